package server

import (
	"alumnihub/internal/notifications"
	"alumnihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type membershipRequest struct {
	CommunityID uint `json:"communityId"`
}

// GetCommunities handles GET /api/communities
// @Summary List communities
// @Description Communities with creator, members, posts and member count
// @Tags communities
// @Produce json
// @Success 200 {array} models.Community
// @Security BearerAuth
// @Router /communities [get]
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	communities, err := s.communityService.ListCommunities(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(communities)
}

// GetCommunity handles GET /api/communities/:id
// @Summary Community detail
// @Tags communities
// @Produce json
// @Param id path int true "Community ID"
// @Success 200 {object} models.Community
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /communities/{id} [get]
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	community, err := s.communityService.GetCommunity(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(community)
}

// CreateCommunity handles POST /api/communities
// @Summary Create community
// @Description The creator becomes the first member
// @Tags communities
// @Accept json
// @Produce json
// @Param request body createCommunityRequest true "Community"
// @Success 201 {object} models.Community
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /communities [post]
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	var req createCommunityRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	community, err := s.communityService.CreateCommunity(c.UserContext(), service.CreateCommunityInput{
		CreatorID:   currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(community)
}

// JoinCommunity handles POST /api/communities/join
// @Summary Join community
// @Tags communities
// @Accept json
// @Produce json
// @Param request body membershipRequest true "Community"
// @Success 200 {object} object{message=string}
// @Success 201 {object} object{message=string,membership=models.CommunityMember}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /communities/join [post]
func (s *Server) JoinCommunity(c *fiber.Ctx) error {
	var req membershipRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	userID := currentUserID(c)
	result, err := s.communityService.Join(c.UserContext(), userID, req.CommunityID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	if result.AlreadyMember {
		return c.JSON(fiber.Map{"message": "User already a member"})
	}

	if community := result.Community; community != nil && community.CreatedByID != userID {
		s.publishUserEvent(community.CreatedByID, notifications.EventCommunityMemberJoined, fiber.Map{
			"communityId":   community.ID,
			"communityName": community.Name,
			"userId":        userID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Joined community",
		"membership": result.Membership,
	})
}

// LeaveCommunity handles DELETE /api/communities/leave
// @Summary Leave community
// @Tags communities
// @Accept json
// @Produce json
// @Param request body membershipRequest true "Community"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /communities/leave [delete]
func (s *Server) LeaveCommunity(c *fiber.Ctx) error {
	var req membershipRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.communityService.Leave(c.UserContext(), currentUserID(c), req.CommunityID); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Left community successfully"})
}
