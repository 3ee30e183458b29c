package service

import (
	"context"
	"strings"
	"testing"

	"alumnihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityService(activity *activityRepoStub, comments *commentRepoStub, users *userRepoStub, communities *communityRepoStub) *ActivityService {
	return NewActivityService(activity, comments, users, communities)
}

func TestActivityService_CreatePost(t *testing.T) {
	activity := noopActivityRepo()
	var created *models.ActivityPost
	activity.createPostFn = func(_ context.Context, p *models.ActivityPost) error {
		p.ID = 12
		created = p
		return nil
	}
	svc := newActivityService(activity, noopCommentRepo(), noopUserRepo(), noopCommunityRepo())

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 3,
		Content:  "  Hiring interns this summer  ",
		ImageURL: "https://cdn.example.com/banner.png",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Hiring interns this summer", post.Content)
	assert.Nil(t, post.CommunityID)
	require.NotNil(t, post.Author)
	assert.Equal(t, uint(3), post.Author.ID)
	assert.NotNil(t, post.Comments)
	assert.NotNil(t, post.Likes)
}

func TestActivityService_CreatePostRejections(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 2 {
			return &models.User{ID: 2, UserType: models.UserTypeStudent}, nil
		}
		return &models.User{ID: id, UserType: models.UserTypeAlumni}, nil
	}
	svc := newActivityService(noopActivityRepo(), noopCommentRepo(), users, noopCommunityRepo())

	_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 3, Content: "   "})
	assertValidationError(t, err)

	_, err = svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 3, Content: strings.Repeat("x", 5001)})
	assertValidationError(t, err)

	_, err = svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 3, Content: "hi", ImageURL: "not a url"})
	assertValidationError(t, err)

	_, err = svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 2, Content: "hi"})
	assertForbiddenError(t, err)
}

func TestActivityService_CreatePostInCommunity(t *testing.T) {
	communityID := uint(6)

	t.Run("member", func(t *testing.T) {
		communities := noopCommunityRepo()
		communities.isMemberFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := newActivityService(noopActivityRepo(), noopCommentRepo(), noopUserRepo(), communities)

		post, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 3, Content: "hi", CommunityID: &communityID})
		require.NoError(t, err)
		require.NotNil(t, post.CommunityID)
		assert.Equal(t, communityID, *post.CommunityID)
	})

	t.Run("non member", func(t *testing.T) {
		svc := newActivityService(noopActivityRepo(), noopCommentRepo(), noopUserRepo(), noopCommunityRepo())
		_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 3, Content: "hi", CommunityID: &communityID})
		assertForbiddenError(t, err)
	})

	t.Run("unknown community", func(t *testing.T) {
		communities := noopCommunityRepo()
		communities.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := newActivityService(noopActivityRepo(), noopCommentRepo(), noopUserRepo(), communities)
		_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 3, Content: "hi", CommunityID: &communityID})
		assertNotFoundError(t, err)
	})
}

func TestActivityService_AddComment(t *testing.T) {
	comments := noopCommentRepo()
	var created *models.Comment
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		created = c
		return nil
	}
	activity := noopActivityRepo()
	activity.postExistsFn = func(_ context.Context, id uint) (bool, error) { return id == 1, nil }
	svc := newActivityService(activity, comments, noopUserRepo(), noopCommunityRepo())

	comment, err := svc.AddComment(context.Background(), CreateCommentInput{UserID: 4, PostID: 1, Content: " nice "})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "nice", comment.Content)
	assert.Equal(t, uint(4), comment.AuthorID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, uint(4), comment.Author.ID)

	_, err = svc.AddComment(context.Background(), CreateCommentInput{UserID: 4, PostID: 2, Content: "nice"})
	assertNotFoundError(t, err)

	_, err = svc.AddComment(context.Background(), CreateCommentInput{UserID: 4, PostID: 1, Content: ""})
	assertValidationError(t, err)

	_, err = svc.AddComment(context.Background(), CreateCommentInput{UserID: 4, PostID: 1, Content: strings.Repeat("c", 2001)})
	assertValidationError(t, err)
}

func TestActivityService_LikePost(t *testing.T) {
	activity := noopActivityRepo()
	liked := map[[2]uint]bool{}
	activity.hasLikedFn = func(_ context.Context, userID, postID uint) (bool, error) {
		return liked[[2]uint{userID, postID}], nil
	}
	activity.likeFn = func(_ context.Context, l *models.Like) error {
		liked[[2]uint{l.UserID, l.PostID}] = true
		return nil
	}
	svc := newActivityService(activity, noopCommentRepo(), noopUserRepo(), noopCommunityRepo())

	like, err := svc.LikePost(context.Background(), 4, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(4), like.UserID)
	assert.Equal(t, uint(1), like.PostID)

	_, err = svc.LikePost(context.Background(), 4, 1)
	assertConflictError(t, err)

	_, err = svc.LikePost(context.Background(), 5, 1)
	require.NoError(t, err)

	activity.postExistsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	_, err = svc.LikePost(context.Background(), 4, 99)
	assertNotFoundError(t, err)
}

func TestActivityService_UnlikePost(t *testing.T) {
	activity := noopActivityRepo()
	activity.unlikeFn = func(_ context.Context, userID, _ uint) (bool, error) { return userID == 4, nil }
	svc := newActivityService(activity, noopCommentRepo(), noopUserRepo(), noopCommunityRepo())

	require.NoError(t, svc.UnlikePost(context.Background(), 4, 1))
	assertNotFoundError(t, svc.UnlikePost(context.Background(), 5, 1))
}

func TestActivityService_ListComments(t *testing.T) {
	comments := noopCommentRepo()
	comments.listByPostFn = func(_ context.Context, postID uint) ([]models.Comment, error) {
		return []models.Comment{{ID: 1, PostID: postID}, {ID: 2, PostID: postID}}, nil
	}
	activity := noopActivityRepo()
	activity.postExistsFn = func(_ context.Context, id uint) (bool, error) { return id == 7, nil }
	svc := newActivityService(activity, comments, noopUserRepo(), noopCommunityRepo())

	list, err := svc.ListComments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(7), list[0].PostID)

	_, err = svc.ListComments(context.Background(), 8)
	assertNotFoundError(t, err)
}
