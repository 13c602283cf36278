package registry

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL bounds how long a lookup answer is reused.
const DefaultCacheTTL = 5 * time.Minute

// CachedOracle memoizes the statuses returned by another oracle. Concurrent lookups
// of the same reference share one call; errors are never cached.
type CachedOracle struct {
	next  Oracle
	cache *gocache.Cache
	group singleflight.Group
}

// NewCachedOracle wraps next with a cache whose entries live for ttl.
func NewCachedOracle(next Oracle, ttl time.Duration) *CachedOracle {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &CachedOracle{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// LocalImageExists implements Oracle.
func (c *CachedOracle) LocalImageExists(ctx context.Context, ref string) (Status, error) {
	return c.lookup(ctx, "local\x00"+ref, ref, c.next.LocalImageExists)
}

// RemoteManifestExists implements Oracle.
func (c *CachedOracle) RemoteManifestExists(ctx context.Context, ref string) (Status, error) {
	return c.lookup(ctx, "remote\x00"+ref, ref, c.next.RemoteManifestExists)
}

func (c *CachedOracle) lookup(
	ctx context.Context,
	key string,
	ref string,
	check func(context.Context, string) (Status, error),
) (Status, error) {
	if cached, found := c.cache.Get(key); found {
		if status, ok := cached.(Status); ok {
			return status, nil
		}
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		if cached, found := c.cache.Get(key); found {
			return cached, nil
		}

		status, checkErr := check(ctx, ref)
		if checkErr != nil {
			return status, checkErr
		}

		c.cache.Set(key, status, gocache.DefaultExpiration)

		return status, nil
	})

	status, _ := value.(Status)

	return status, err
}
