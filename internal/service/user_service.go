package service

import (
	"context"
	"strings"

	"alumnihub/internal/models"
	"alumnihub/internal/repository"
	"alumnihub/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

// UpdateProfileInput carries the editable profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	ActorID        uint
	TargetID       uint
	FullName       *string
	Phone          *string
	GraduationYear *int
	Language       *string
	LinkedIn       *string
	Skills         *string
	Company        *string
	Location       *string
}

func NewUserService(userRepo repository.UserRepository, isAdmin func(ctx context.Context, userID uint) (bool, error)) *UserService {
	return &UserService{userRepo: userRepo, isAdmin: isAdmin}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := s.requireSelfOrAdmin(ctx, in.ActorID, in.TargetID, "You can only update your own profile"); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 120
	const maxFieldLen = 120
	const maxSkillsLen = 2000

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, models.NewValidationError("Full name cannot be empty")
		}
		if len(name) > maxNameLen {
			return nil, models.NewValidationError("Full name too long (max 120 characters)")
		}
		user.FullName = name
	}
	if in.Phone != nil {
		if err := validation.ValidatePhone(*in.Phone); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Phone = *in.Phone
	}
	if in.GraduationYear != nil {
		if err := validation.ValidateGraduationYear(*in.GraduationYear); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		year := *in.GraduationYear
		user.GraduationYear = &year
	}
	if in.LinkedIn != nil {
		if err := validation.ValidateLinkedIn(*in.LinkedIn); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LinkedIn = *in.LinkedIn
	}
	if in.Skills != nil {
		if len(*in.Skills) > maxSkillsLen {
			return nil, models.NewValidationError("Skills too long (max 2000 characters)")
		}
		user.Skills = *in.Skills
	}
	for _, f := range []struct {
		val  *string
		dst  *string
		name string
	}{
		{in.Language, &user.Language, "Language"},
		{in.Company, &user.Company, "Company"},
		{in.Location, &user.Location, "Location"},
	} {
		if f.val == nil {
			continue
		}
		if len(*f.val) > maxFieldLen {
			return nil, models.NewValidationError(f.name + " too long (max 120 characters)")
		}
		*f.dst = strings.TrimSpace(*f.val)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if err := s.requireAdmin(ctx, actorID, "Only admins can delete users"); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}

func (s *UserService) requireSelfOrAdmin(ctx context.Context, actorID, targetID uint, msg string) error {
	if actorID != 0 && actorID == targetID {
		return nil
	}
	return s.requireAdmin(ctx, actorID, msg)
}

func (s *UserService) requireAdmin(ctx context.Context, actorID uint, msg string) error {
	return requireAdmin(ctx, s.isAdmin, actorID, msg)
}

// requireAdmin returns FORBIDDEN unless the isAdmin hook confirms the actor.
func requireAdmin(ctx context.Context, isAdmin func(context.Context, uint) (bool, error), actorID uint, msg string) error {
	if isAdmin == nil || actorID == 0 {
		return models.NewForbiddenError(msg)
	}
	admin, err := isAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewForbiddenError(msg)
	}
	return nil
}
