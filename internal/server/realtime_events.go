package server

import (
	"context"
	"log/slog"
	"time"

	"alumnihub/internal/featureflags"
	"alumnihub/internal/middleware"
	"alumnihub/internal/models"
	"alumnihub/internal/notifications"
)

const publishTimeout = 2 * time.Second

func (s *Server) liveNotificationsEnabled(userID uint) bool {
	if s.featureFlags == nil {
		return false
	}
	return s.featureFlags.Enabled(featureflags.LiveNotifications, userID)
}

// publishUserEvent delivers an event to one user's connections. With Redis the
// event goes through pub/sub so every instance sees it; otherwise it is handed
// to the local hub.
func (s *Server) publishUserEvent(userID uint, eventType string, payload any) {
	if !s.liveNotificationsEnabled(userID) {
		return
	}
	message, err := notifications.Encode(eventType, payload)
	if err != nil {
		middleware.Logger.Error("failed to marshal event", slog.String("type", eventType), slog.String("error", err.Error()))
		return
	}

	if s.notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.notifier.PublishUser(ctx, userID, message); err != nil {
			middleware.Logger.Warn("failed to publish user event",
				slog.String("type", eventType), slog.Uint64("user_id", uint64(userID)), slog.String("error", err.Error()))
		}
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
}

func (s *Server) publishBroadcastEvent(eventType string, payload any) {
	if s.featureFlags == nil || !s.featureFlags.EnabledGlobally(featureflags.LiveNotifications) {
		return
	}
	message, err := notifications.Encode(eventType, payload)
	if err != nil {
		middleware.Logger.Error("failed to marshal event", slog.String("type", eventType), slog.String("error", err.Error()))
		return
	}

	if s.notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.notifier.PublishBroadcast(ctx, message); err != nil {
			middleware.Logger.Warn("failed to publish broadcast event", slog.String("type", eventType), slog.String("error", err.Error()))
		}
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
}

func userSummary(user *models.User) map[string]interface{} {
	if user == nil {
		return nil
	}
	return map[string]interface{}{
		"id":       user.ID,
		"fullName": user.FullName,
		"userType": user.UserType,
	}
}
