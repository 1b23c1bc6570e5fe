package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotels_xml/internal/domain"
)

// Cached is a cache-aside decorator around a Fetcher. Cache failures are
// logged and bypassed; they never fail a fetch.
type Cached struct {
	next  domain.Fetcher
	cache domain.Cache
	ttl   time.Duration
}

func NewCached(next domain.Fetcher, cache domain.Cache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl}
}

func cacheKey(location string) string { return "doc:" + location }

func (c *Cached) Fetch(ctx context.Context, location string) ([]byte, error) {
	key := cacheKey(location)
	var b []byte
	ok, err := c.cache.Get(ctx, key, &b)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("document cache read failed")
	} else if ok {
		return b, nil
	}

	b, err = c.next.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, b, int(c.ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("document cache write failed")
	}
	return b, nil
}

// Forget drops the cached copy of location.
func (c *Cached) Forget(ctx context.Context, location string) error {
	return c.cache.Del(ctx, cacheKey(location))
}
