package service

import (
	"context"
	"strings"
	"time"

	"alumnihub/internal/models"
	"alumnihub/internal/repository"
)

type EventService struct {
	eventRepo repository.EventRepository
	isAdmin   func(ctx context.Context, userID uint) (bool, error)
}

type CreateEventInput struct {
	ActorID     uint
	Title       string
	Description string
	Date        string
	Location    string
}

// UpdateEventInput carries the editable event fields. Nil means unchanged.
type UpdateEventInput struct {
	ActorID     uint
	EventID     uint
	Title       *string
	Description *string
	Date        *string
	Location    *string
}

func NewEventService(eventRepo repository.EventRepository, isAdmin func(ctx context.Context, userID uint) (bool, error)) *EventService {
	return &EventService{eventRepo: eventRepo, isAdmin: isAdmin}
}

func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.List(ctx)
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if err := requireAdmin(ctx, s.isAdmin, in.ActorID, "Only admins can manage events"); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if in.Title == "" || in.Description == "" || in.Date == "" || in.Location == "" {
		return nil, models.NewValidationError("All fields are required")
	}
	date, err := ParseEventDate(in.Date)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Location:    in.Location,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (*models.Event, error) {
	if err := requireAdmin(ctx, s.isAdmin, in.ActorID, "Only admins can manage events"); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		val  *string
		dst  *string
		name string
	}{
		{in.Title, &event.Title, "Title"},
		{in.Description, &event.Description, "Description"},
		{in.Location, &event.Location, "Location"},
	} {
		if f.val == nil {
			continue
		}
		v := strings.TrimSpace(*f.val)
		if v == "" {
			return nil, models.NewValidationError(f.name + " cannot be empty")
		}
		*f.dst = v
	}
	if in.Date != nil {
		date, err := ParseEventDate(*in.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actorID, eventID uint) error {
	if err := requireAdmin(ctx, s.isAdmin, actorID, "Only admins can manage events"); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, eventID)
}

// ParseEventDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func ParseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, models.NewValidationError("Date must be RFC 3339 or YYYY-MM-DD")
}
