package server

import (
	"alumnihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type eventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetEvents handles GET /api/events
// @Summary List events
// @Description Events by date, newest first
// @Tags events
// @Produce json
// @Success 200 {array} models.Event
// @Router /events [get]
func (s *Server) GetEvents(c *fiber.Ctx) error {
	events, err := s.eventService.ListEvents(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(events)
}

// CreateEvent handles POST /api/events
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Param request body eventRequest true "Event"
// @Success 201 {object} models.Event
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /events [post]
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	event, err := s.eventService.CreateEvent(c.UserContext(), service.CreateEventInput{
		ActorID:     currentUserID(c),
		Title:       deref(req.Title),
		Description: deref(req.Description),
		Date:        deref(req.Date),
		Location:    deref(req.Location),
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PATCH /api/events/:id
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body eventRequest true "Fields to change"
// @Success 200 {object} models.Event
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [patch]
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req eventRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	event, err := s.eventService.UpdateEvent(c.UserContext(), service.UpdateEventInput{
		ActorID:     currentUserID(c),
		EventID:     id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id
// @Summary Delete event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [delete]
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.eventService.DeleteEvent(c.UserContext(), currentUserID(c), id); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted successfully"})
}
