package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"alumnihub/internal/middleware"
)

const (
	UserKeyPrefix      = "user:%d"
	EventsListKey      = "events:list"
	CommunityKeyPrefix = "community:%d"
	CommunitiesListKey = "communities:list"
	TokenBlacklistKey  = "auth:blacklist:%s"
)

const (
	UserTTL      = 5 * time.Minute
	EventsTTL    = 10 * time.Minute
	CommunityTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func CommunityKey(communityID uint) string {
	return fmt.Sprintf(CommunityKeyPrefix, communityID)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistKey, jti)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateEvents(ctx context.Context) {
	Invalidate(ctx, EventsListKey)
}

// InvalidateCommunity drops the community detail entry and the list, whose member counts change with it.
func InvalidateCommunity(ctx context.Context, communityID uint) {
	Invalidate(ctx, CommunityKey(communityID), CommunitiesListKey)
}

// InvalidateAllCommunities drops every community detail entry and the list.
// Community payloads embed member and author profiles, so a profile change
// can touch any of them.
func InvalidateAllCommunities(ctx context.Context) {
	if client == nil {
		return
	}
	keys := []string{CommunitiesListKey}
	iter := client.Scan(ctx, 0, "community:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "community cache scan failed", slog.String("error", err.Error()))
	}
	Invalidate(ctx, keys...)
}
