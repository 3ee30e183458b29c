package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), 1, "test payload"))
	assert.NoError(t, n.NotifyAll(context.Background(), EventPostLiked, nil))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {}))

	var missing *Notifier
	assert.NoError(t, missing.PublishBroadcast(context.Background(), "x"))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
		id, ok := parseUserChannel(tt.expected)
		assert.True(t, ok)
		assert.Equal(t, tt.userID, id)
	}

	_, ok := parseUserChannel("notifications:user:0")
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	msg, err := Encode(EventCommentCreated, map[string]any{"postId": 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"comment_created","payload":{"postId":4}}`, msg)

	_, err = Encode(EventPostCreated, make(chan int))
	assert.Error(t, err)
}
