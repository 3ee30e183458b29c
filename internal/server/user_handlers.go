package server

import (
	"context"
	"time"

	"alumnihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateUserRequest struct {
	FullName       *string   `json:"fullName"`
	Phone          *string   `json:"phone"`
	GraduationYear yearField `json:"graduationYear" swaggertype:"string"`
	Language       *string   `json:"language"`
	LinkedIn       *string   `json:"linkedin"`
	Skills         *string   `json:"skills"`
	Company        *string   `json:"company"`
	Location       *string   `json:"location"`
}

// GetUsers handles GET /api/user
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /user [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	page := parsePagination(c, 50)

	users, err := s.userService.ListUsers(ctx, page.Limit, page.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(users)
}

// SearchUsers handles GET /api/user/search?q=...
// @Summary Search users by name
// @Tags users
// @Produce json
// @Param q query string true "Name fragment"
// @Success 200 {array} models.UserSummary
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	users, err := s.userService.SearchUsers(ctx, c.Query("q"))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/user/:id
// @Summary Get user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PATCH /api/user/:id
// @Summary Update user profile
// @Description Email, password and userType cannot be changed here.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body updateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/{id} [patch]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateUserRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		ActorID:        currentUserID(c),
		TargetID:       id,
		FullName:       req.FullName,
		Phone:          req.Phone,
		GraduationYear: req.GraduationYear.Int(),
		Language:       req.Language,
		LinkedIn:       req.LinkedIn,
		Skills:         req.Skills,
		Company:        req.Company,
		Location:       req.Location,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/user/:id
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), currentUserID(c), id); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
