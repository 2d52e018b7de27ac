package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%d"
	blogKeyPrefix = "blog:%d"
	slugKeyPrefix = "blog:slug:%s"
)

const (
	UserTTL = 5 * time.Minute
	BlogTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func BlogKey(blogID uint) string {
	return fmt.Sprintf(blogKeyPrefix, blogID)
}

func BlogSlugKey(slug string) string {
	return fmt.Sprintf(slugKeyPrefix, slug)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateBlog(ctx context.Context, blogID uint, slug string) {
	Invalidate(ctx, BlogKey(blogID), BlogSlugKey(slug))
}
