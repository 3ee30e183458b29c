package service

import (
	"context"
	"errors"
	"testing"

	"alumnihub/internal/models"
	"alumnihub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
	listFn       func(context.Context, int, int) ([]models.User, error)
	searchFn     func(context.Context, string) ([]models.UserSummary, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	return s.searchFn(ctx, query)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, UserType: models.UserTypeAlumni}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		searchFn:     func(_ context.Context, _ string) ([]models.UserSummary, error) { return nil, nil },
	}
}

// jobRepoStub is a stub for repository.JobRepository.
type jobRepoStub struct {
	listFn           func(context.Context, uint) ([]models.Job, error)
	getByIDFn        func(context.Context, uint) (*models.Job, error)
	createFn         func(context.Context, *models.Job) error
	applyFn          func(context.Context, *models.JobApplication) error
	hasAppliedFn     func(context.Context, uint, uint) (bool, error)
	appliedJobIDsFn  func(context.Context, uint) ([]uint, error)
	listApplicantsFn func(context.Context, uint) ([]repository.Applicant, error)
}

func (s *jobRepoStub) List(ctx context.Context, postedByID uint) ([]models.Job, error) {
	return s.listFn(ctx, postedByID)
}
func (s *jobRepoStub) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	return s.getByIDFn(ctx, id)
}
func (s *jobRepoStub) Create(ctx context.Context, job *models.Job) error {
	return s.createFn(ctx, job)
}
func (s *jobRepoStub) Apply(ctx context.Context, application *models.JobApplication) error {
	return s.applyFn(ctx, application)
}
func (s *jobRepoStub) HasApplied(ctx context.Context, userID, jobID uint) (bool, error) {
	return s.hasAppliedFn(ctx, userID, jobID)
}
func (s *jobRepoStub) AppliedJobIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.appliedJobIDsFn(ctx, userID)
}
func (s *jobRepoStub) ListApplicants(ctx context.Context, jobID uint) ([]repository.Applicant, error) {
	return s.listApplicantsFn(ctx, jobID)
}

func noopJobRepo() *jobRepoStub {
	return &jobRepoStub{
		listFn: func(_ context.Context, _ uint) ([]models.Job, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Job, error) {
			return &models.Job{ID: id, PostedByID: 100}, nil
		},
		createFn:         func(_ context.Context, _ *models.Job) error { return nil },
		applyFn:          func(_ context.Context, _ *models.JobApplication) error { return nil },
		hasAppliedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		appliedJobIDsFn:  func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		listApplicantsFn: func(_ context.Context, _ uint) ([]repository.Applicant, error) { return nil, nil },
	}
}

// eventRepoStub is a stub for repository.EventRepository.
type eventRepoStub struct {
	listFn    func(context.Context) ([]models.Event, error)
	getByIDFn func(context.Context, uint) (*models.Event, error)
	createFn  func(context.Context, *models.Event) error
	updateFn  func(context.Context, *models.Event) error
	deleteFn  func(context.Context, uint) error
}

func (s *eventRepoStub) List(ctx context.Context) ([]models.Event, error) { return s.listFn(ctx) }
func (s *eventRepoStub) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	return s.getByIDFn(ctx, id)
}
func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	return s.createFn(ctx, event)
}
func (s *eventRepoStub) Update(ctx context.Context, event *models.Event) error {
	return s.updateFn(ctx, event)
}
func (s *eventRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopEventRepo() *eventRepoStub {
	return &eventRepoStub{
		listFn:    func(_ context.Context) ([]models.Event, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Event, error) { return &models.Event{ID: id}, nil },
		createFn:  func(_ context.Context, _ *models.Event) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Event) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// activityRepoStub is a stub for repository.ActivityRepository.
type activityRepoStub struct {
	listPostsFn  func(context.Context, int, int) ([]models.ActivityPost, error)
	getPostFn    func(context.Context, uint) (*models.ActivityPost, error)
	postExistsFn func(context.Context, uint) (bool, error)
	createPostFn func(context.Context, *models.ActivityPost) error
	hasLikedFn   func(context.Context, uint, uint) (bool, error)
	likeFn       func(context.Context, *models.Like) error
	unlikeFn     func(context.Context, uint, uint) (bool, error)
}

func (s *activityRepoStub) ListPosts(ctx context.Context, limit, offset int) ([]models.ActivityPost, error) {
	return s.listPostsFn(ctx, limit, offset)
}
func (s *activityRepoStub) GetPost(ctx context.Context, id uint) (*models.ActivityPost, error) {
	return s.getPostFn(ctx, id)
}
func (s *activityRepoStub) PostExists(ctx context.Context, id uint) (bool, error) {
	return s.postExistsFn(ctx, id)
}
func (s *activityRepoStub) CreatePost(ctx context.Context, post *models.ActivityPost) error {
	return s.createPostFn(ctx, post)
}
func (s *activityRepoStub) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.hasLikedFn(ctx, userID, postID)
}
func (s *activityRepoStub) Like(ctx context.Context, like *models.Like) error {
	return s.likeFn(ctx, like)
}
func (s *activityRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, postID)
}

func noopActivityRepo() *activityRepoStub {
	return &activityRepoStub{
		listPostsFn:  func(_ context.Context, _, _ int) ([]models.ActivityPost, error) { return nil, nil },
		getPostFn:    func(_ context.Context, id uint) (*models.ActivityPost, error) { return &models.ActivityPost{ID: id}, nil },
		postExistsFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
		createPostFn: func(_ context.Context, _ *models.ActivityPost) error { return nil },
		hasLikedFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:       func(_ context.Context, _ *models.Like) error { return nil },
		unlikeFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
	}
}

// communityRepoStub is a stub for repository.CommunityRepository.
type communityRepoStub struct {
	listFn              func(context.Context) ([]models.Community, error)
	getByIDFn           func(context.Context, uint) (*models.Community, error)
	existsFn            func(context.Context, uint) (bool, error)
	createWithCreatorFn func(context.Context, *models.Community) error
	isMemberFn          func(context.Context, uint, uint) (bool, error)
	addMemberFn         func(context.Context, *models.CommunityMember) error
	removeMemberFn      func(context.Context, uint, uint) (bool, error)
}

func (s *communityRepoStub) List(ctx context.Context) ([]models.Community, error) {
	return s.listFn(ctx)
}
func (s *communityRepoStub) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	return s.getByIDFn(ctx, id)
}
func (s *communityRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *communityRepoStub) CreateWithCreator(ctx context.Context, community *models.Community) error {
	return s.createWithCreatorFn(ctx, community)
}
func (s *communityRepoStub) IsMember(ctx context.Context, userID, communityID uint) (bool, error) {
	return s.isMemberFn(ctx, userID, communityID)
}
func (s *communityRepoStub) AddMember(ctx context.Context, member *models.CommunityMember) error {
	return s.addMemberFn(ctx, member)
}
func (s *communityRepoStub) RemoveMember(ctx context.Context, userID, communityID uint) (bool, error) {
	return s.removeMemberFn(ctx, userID, communityID)
}

func noopCommunityRepo() *communityRepoStub {
	return &communityRepoStub{
		listFn: func(_ context.Context) ([]models.Community, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Community, error) {
			return &models.Community{ID: id, CreatedByID: 100}, nil
		},
		existsFn:            func(_ context.Context, _ uint) (bool, error) { return true, nil },
		createWithCreatorFn: func(_ context.Context, _ *models.Community) error { return nil },
		isMemberFn:          func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		addMemberFn:         func(_ context.Context, _ *models.CommunityMember) error { return nil },
		removeMemberFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// adminIDs returns an isAdmin hook that accepts exactly the given ids.
func adminIDs(ids ...uint) func(context.Context, uint) (bool, error) {
	return func(_ context.Context, userID uint) (bool, error) {
		for _, id := range ids {
			if id == userID {
				return true, nil
			}
		}
		return false, nil
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}
