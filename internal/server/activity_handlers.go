package server

import (
	"alumnihub/internal/notifications"
	"alumnihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl"`
	CommunityID *uint  `json:"communityId"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// GetActivity handles GET /api/activity
// @Summary Activity feed
// @Description Posts newest first with author, comments and likes
// @Tags activity
// @Produce json
// @Param limit query int false "Page size (max 100). Omit for the whole feed"
// @Param offset query int false "Offset, used with limit"
// @Success 200 {array} models.ActivityPost
// @Security BearerAuth
// @Router /activity [get]
func (s *Server) GetActivity(c *fiber.Ctx) error {
	var page Pagination
	if c.Query("limit") != "" {
		page = parsePagination(c, 20)
	}

	posts, err := s.activityService.ListPosts(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// CreateActivityPost handles POST /api/activity
// @Summary Create post
// @Description Only alumni can post. Community posts require membership.
// @Tags activity
// @Accept json
// @Produce json
// @Param request body createPostRequest true "Post"
// @Success 201 {object} models.ActivityPost
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activity [post]
func (s *Server) CreateActivityPost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.activityService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:    currentUserID(c),
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		CommunityID: req.CommunityID,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	s.publishBroadcastEvent(notifications.EventPostCreated, fiber.Map{
		"postId":      post.ID,
		"communityId": post.CommunityID,
		"author":      userSummary(post.Author),
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetComments handles GET /api/activity/:postId/comments
// @Summary Post comments
// @Tags activity
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activity/{postId}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.activityService.ListComments(c.UserContext(), postID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// AddComment handles POST /api/activity/:postId/comment
// @Summary Comment on a post
// @Tags activity
// @Accept json
// @Produce json
// @Param postId path int true "Post ID"
// @Param request body commentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activity/{postId}/comment [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.activityService.AddComment(c.UserContext(), service.CreateCommentInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	s.publishBroadcastEvent(notifications.EventCommentCreated, fiber.Map{
		"postId":    postID,
		"commentId": comment.ID,
		"author":    userSummary(comment.Author),
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// LikePost handles POST /api/activity/:postId/like
// @Summary Like a post
// @Tags activity
// @Produce json
// @Param postId path int true "Post ID"
// @Success 201 {object} object{message=string,like=models.Like}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activity/{postId}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	like, err := s.activityService.LikePost(c.UserContext(), userID, postID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	s.publishBroadcastEvent(notifications.EventPostLiked, fiber.Map{
		"postId": postID,
		"userId": userID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post liked",
		"like":    like,
	})
}

// UnlikePost handles DELETE /api/activity/:postId/like
// @Summary Remove a like
// @Tags activity
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activity/{postId}/like [delete]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.activityService.UnlikePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unliked successfully"})
}
