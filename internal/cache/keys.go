package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	profileKeyPrefix = "profile:%d"
	githubKeyPrefix  = "github:%s"
)

const (
	ProfileTTL = 5 * time.Minute
	GithubTTL  = 10 * time.Minute
)

// ProfileKey returns the cache key for a profile by its owning user ID.
func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

// GithubKey returns the cache key for a user's GitHub repositories.
func GithubKey(username string) string {
	return fmt.Sprintf(githubKeyPrefix, username)
}

// Invalidate removes the given key. No-op when the cache is disabled.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile removes the cached profile for the given owner.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}
