package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"alumnihub/internal/models"
	"alumnihub/internal/repository"
)

type CommunityService struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
}

type CreateCommunityInput struct {
	CreatorID   uint
	Name        string
	Description string
}

// JoinResult reports the membership and whether it already existed.
type JoinResult struct {
	Membership    *models.CommunityMember
	Community     *models.Community
	AlreadyMember bool
}

func NewCommunityService(communityRepo repository.CommunityRepository, userRepo repository.UserRepository) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, userRepo: userRepo}
}

func (s *CommunityService) ListCommunities(ctx context.Context) ([]models.Community, error) {
	return s.communityRepo.List(ctx)
}

func (s *CommunityService) GetCommunity(ctx context.Context, id uint) (*models.Community, error) {
	return s.communityRepo.GetByID(ctx, id)
}

func (s *CommunityService) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*models.Community, error) {
	const maxDescriptionLen = 2000

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Community name is required")
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 80 {
		return nil, models.NewValidationError("Community name must be 3-80 characters")
	}
	description := strings.TrimSpace(in.Description)
	if len(description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 2000 characters)")
	}

	creator, err := s.userRepo.GetByID(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}

	community := &models.Community{
		Name:        name,
		Description: description,
		CreatedByID: creator.ID,
	}
	if err := s.communityRepo.CreateWithCreator(ctx, community); err != nil {
		return nil, err
	}
	community.CreatedBy = creator
	community.Posts = []models.ActivityPost{}
	return community, nil
}

// Join adds the user to the community. Joining twice is not an error.
func (s *CommunityService) Join(ctx context.Context, userID, communityID uint) (*JoinResult, error) {
	if communityID == 0 {
		return nil, models.NewValidationError("Community ID is required")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	member, err := s.communityRepo.IsMember(ctx, userID, communityID)
	if err != nil {
		return nil, err
	}
	if member {
		return &JoinResult{Community: community, AlreadyMember: true}, nil
	}

	membership := &models.CommunityMember{UserID: userID, CommunityID: communityID}
	if err := s.communityRepo.AddMember(ctx, membership); err != nil {
		// Lost a race with a concurrent join for the same pair.
		if models.ErrorCode(err) == models.CodeConflict {
			return &JoinResult{Community: community, AlreadyMember: true}, nil
		}
		return nil, err
	}
	return &JoinResult{Membership: membership, Community: community}, nil
}

func (s *CommunityService) Leave(ctx context.Context, userID, communityID uint) error {
	if communityID == 0 {
		return models.NewValidationError("Community ID is required")
	}
	removed, err := s.communityRepo.RemoveMember(ctx, userID, communityID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundMessage("Membership not found")
	}
	return nil
}
