package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix    = "post:%s"
	profileKeyPrefix = "profile:%s"
	feedListKey      = "feed:top"
)

const (
	PostTTL    = 5 * time.Minute
	ProfileTTL = 5 * time.Minute
	FeedTTL    = 30 * time.Second
)

func PostKey(uid string) string {
	return fmt.Sprintf(postKeyPrefix, uid)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(profileKeyPrefix, username)
}

func FeedListKey() string {
	return feedListKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidatePost(ctx context.Context, uid string) {
	Invalidate(ctx, PostKey(uid))
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, feedListKey)
}
