package notifications

import (
	"encoding/json"
	"fmt"
)

// Event types pushed to websocket clients.
const (
	EventConnected             = "connected"
	EventPostCreated           = "post_created"
	EventCommentCreated        = "comment_created"
	EventPostLiked             = "post_liked"
	EventApplicationReceived   = "application_received"
	EventCommunityMemberJoined = "community_member_joined"
	EventMessagesDropped       = "messages_dropped"
)

// Event is the envelope written to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Encode marshals an event envelope into the wire payload.
func Encode(eventType string, payload any) (string, error) {
	b, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		return "", fmt.Errorf("marshal %s event: %w", eventType, err)
	}
	return string(b), nil
}
