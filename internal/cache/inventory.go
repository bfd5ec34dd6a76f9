package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// IndexKeyName is the single fixed key for the rendered "all posts"
	// landing view. The whole first view is cached as one unit; the key is
	// deliberately not parameterized by page.
	IndexKeyName = "posts:index"

	// GroupKeyPrefix names per-group listing entries. Only public content
	// gets a cache key; user rows in particular never go through the JSON
	// cache, since the password hash is excluded from JSON and would
	// round-trip empty.
	GroupKeyPrefix = "group:%s"
)

const (
	// IndexTTL is the default landing-view lifetime; the service layer
	// overrides it from configuration.
	IndexTTL = 20 * time.Second

	GroupTTL = 10 * time.Minute
)

// IndexKey returns the fixed key of the cached landing view.
func IndexKey() string {
	return IndexKeyName
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateIndex(ctx context.Context) {
	Invalidate(ctx, IndexKey())
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}
