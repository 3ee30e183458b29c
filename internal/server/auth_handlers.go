package server

import (
	"strings"

	"alumnihub/internal/models"
	"alumnihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Password       string    `json:"password"`
	UserType       string    `json:"userType"`
	GraduationYear yearField `json:"graduationYear" swaggertype:"string"`
	Language       string    `json:"language"`
	LinkedIn       string    `json:"linkedin"`
	Skills         string    `json:"skills"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a student or alumni account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body signupRequest true "Signup request"
// @Success 201 {object} object{message=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.authService.Signup(c.UserContext(), service.SignupInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		UserType:       models.UserType(strings.ToUpper(strings.TrimSpace(req.UserType))),
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

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{message=string,token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// GetCurrentUser handles GET /api/auth/user
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/user [get]
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.authService.CurrentUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the current token until it expires
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(c.UserContext(), currentClaims(c)); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
