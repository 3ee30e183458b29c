package service

import (
	"context"
	"strings"

	"alumnihub/internal/models"
	"alumnihub/internal/observability"
	"alumnihub/internal/repository"
	"alumnihub/internal/validation"
)

const (
	maxPostLen    = 5000
	maxCommentLen = 2000
)

type ActivityService struct {
	activityRepo  repository.ActivityRepository
	commentRepo   repository.CommentRepository
	userRepo      repository.UserRepository
	communityRepo repository.CommunityRepository
}

type CreatePostInput struct {
	AuthorID    uint
	Content     string
	ImageURL    string `json:"imageUrl" validate:"omitempty,url,max=1024"`
	CommunityID *uint
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewActivityService(
	activityRepo repository.ActivityRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	communityRepo repository.CommunityRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo:  activityRepo,
		commentRepo:   commentRepo,
		userRepo:      userRepo,
		communityRepo: communityRepo,
	}
}

func (s *ActivityService) ListPosts(ctx context.Context, limit, offset int) ([]models.ActivityPost, error) {
	return s.activityRepo.ListPosts(ctx, limit, offset)
}

func (s *ActivityService) CreatePost(ctx context.Context, in CreatePostInput) (*models.ActivityPost, error) {
	in.Content = strings.TrimSpace(in.Content)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostLen {
		return nil, models.NewValidationError("Post too long (max 5000 characters)")
	}
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !author.IsAlumni() {
		return nil, models.NewForbiddenError("Only Alumni can create posts")
	}

	if in.CommunityID != nil {
		exists, err := s.communityRepo.Exists(ctx, *in.CommunityID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewNotFoundMessage("Community not found")
		}
		member, err := s.communityRepo.IsMember(ctx, in.AuthorID, *in.CommunityID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, models.NewForbiddenError("Only community members can post here")
		}
	}

	post := &models.ActivityPost{
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		AuthorID:    author.ID,
		CommunityID: in.CommunityID,
	}
	if err := s.activityRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	post.Author = author
	post.Comments = []models.Comment{}
	post.Likes = []models.Like{}
	return post, nil
}

func (s *ActivityService) AddComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := s.requirePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		PostID:   in.PostID,
		AuthorID: author.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}

// ListComments returns a post's comments oldest first.
func (s *ActivityService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *ActivityService) LikePost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.activityRepo.HasLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewConflictError("Already liked")
	}

	like := &models.Like{UserID: userID, PostID: postID}
	if err := s.activityRepo.Like(ctx, like); err != nil {
		return nil, err
	}

	observability.LikesTotal.Inc()
	return like, nil
}

func (s *ActivityService) UnlikePost(ctx context.Context, userID, postID uint) error {
	removed, err := s.activityRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundMessage("Like not found")
	}
	return nil
}

func (s *ActivityService) requirePost(ctx context.Context, postID uint) error {
	exists, err := s.activityRepo.PostExists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundMessage("Post not found")
	}
	return nil
}
