package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"alumnihub/internal/models"
	"alumnihub/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, env *testEnv, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp, raw := env.do(t, http.MethodPost, "/api/activity", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decodeMap(t, raw)
}

func TestCreateActivityPost(t *testing.T) {
	env := newTestEnv(t, false)
	alumnus := env.createUser(t, "Al Umnus", "al@example.com", models.UserTypeAlumni)
	student := env.createUser(t, "Stu Dent", "stu@example.com", models.UserTypeStudent)

	watcher, err := env.srv.hub.Register(student.ID, nil)
	require.NoError(t, err)

	post := createPost(t, env, env.token(t, alumnus), map[string]interface{}{"content": "  Hiring interns!  "})
	assert.Equal(t, "Hiring interns!", post["content"])
	author, ok := post["author"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Al Umnus", author["fullName"])

	var event notifications.Event
	require.NoError(t, json.Unmarshal(<-watcher.Send, &event))
	assert.Equal(t, notifications.EventPostCreated, event.Type)

	resp, raw := env.do(t, http.MethodPost, "/api/activity", env.token(t, student), map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only Alumni can create posts", decodeMap(t, raw)["message"])

	resp, _ = env.do(t, http.MethodPost, "/api/activity", env.token(t, alumnus), map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/activity", env.token(t, alumnus), map[string]string{"content": strings.Repeat("x", 5001)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	t.Run("community scoped", func(t *testing.T) {
		resp, raw := env.do(t, http.MethodPost, "/api/activity", env.token(t, alumnus), map[string]interface{}{
			"content": "hello", "communityId": 42,
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Community not found", decodeMap(t, raw)["message"])

		owner := env.createUser(t, "Co Owner", "owner@example.com", models.UserTypeAlumni)
		communityID := createCommunity(t, env, env.token(t, owner), "Gophers")

		resp, _ = env.do(t, http.MethodPost, "/api/activity", env.token(t, alumnus), map[string]interface{}{
			"content": "hello", "communityId": communityID,
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		post := createPost(t, env, env.token(t, owner), map[string]interface{}{
			"content": "welcome", "communityId": communityID,
		})
		assert.Equal(t, float64(communityID), post["communityId"])
	})
}

func TestActivityFeed_CommentsAndLikes(t *testing.T) {
	env := newTestEnv(t, false)
	alumnus := env.createUser(t, "Al Umnus", "al@example.com", models.UserTypeAlumni)
	student := env.createUser(t, "Stu Dent", "stu@example.com", models.UserTypeStudent)
	alToken, stuToken := env.token(t, alumnus), env.token(t, student)

	postID := uint(createPost(t, env, alToken, map[string]interface{}{"content": "first"})["id"].(float64))
	createPost(t, env, alToken, map[string]interface{}{"content": "second"})

	commentPath := fmt.Sprintf("/api/activity/%d/comment", postID)
	resp, raw := env.do(t, http.MethodPost, commentPath, stuToken, map[string]string{"content": "congrats"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	comment := decodeMap(t, raw)
	assert.Equal(t, "congrats", comment["content"])
	commentAuthor, ok := comment["author"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Stu Dent", commentAuthor["fullName"])

	resp, _ = env.do(t, http.MethodPost, commentPath, stuToken, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = env.do(t, http.MethodPost, "/api/activity/999/comment", stuToken, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, raw = env.do(t, http.MethodPost, "/api/activity/abc/comment", stuToken, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid post ID", decodeMap(t, raw)["message"])

	likePath := fmt.Sprintf("/api/activity/%d/like", postID)
	resp, raw = env.do(t, http.MethodPost, likePath, stuToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, "Post liked", decodeMap(t, raw)["message"])

	resp, raw = env.do(t, http.MethodPost, likePath, stuToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Already liked", decodeMap(t, raw)["message"])

	resp, _ = env.do(t, http.MethodPost, likePath, alToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/api/activity", stuToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []models.ActivityPost
	require.NoError(t, json.Unmarshal(raw, &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Content)
	assert.Equal(t, postID, feed[1].ID)
	assert.Equal(t, 2, feed[1].LikesCount)
	assert.Equal(t, 1, feed[1].CommentsCount)

	resp, raw = env.do(t, http.MethodGet, fmt.Sprintf("/api/activity/%d/comments", postID), stuToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(raw, &comments))
	require.Len(t, comments, 1)

	resp, raw = env.do(t, http.MethodDelete, likePath, stuToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Unliked successfully", decodeMap(t, raw)["message"])

	resp, raw = env.do(t, http.MethodDelete, likePath, stuToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Like not found", decodeMap(t, raw)["message"])
}

func TestGetActivity_WholeFeedUnlessPaged(t *testing.T) {
	env := newTestEnv(t, false)
	alumnus := env.createUser(t, "Al Umnus", "al@example.com", models.UserTypeAlumni)
	for i := 0; i < 25; i++ {
		require.NoError(t, env.db.Create(&models.ActivityPost{
			Content:  fmt.Sprintf("post %d", i),
			AuthorID: alumnus.ID,
		}).Error)
	}
	token := env.token(t, alumnus)

	resp, raw := env.do(t, http.MethodGet, "/api/activity", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var posts []models.ActivityPost
	require.NoError(t, json.Unmarshal(raw, &posts))
	assert.Len(t, posts, 25)
	assert.Equal(t, "post 24", posts[0].Content)

	resp, raw = env.do(t, http.MethodGet, "/api/activity?limit=10&offset=20", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 5)
	assert.Equal(t, "post 4", posts[0].Content)
}
