package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"time"
)

const authCacheKeyPrefix = "weave:check-auth:"

// AuthChecker answers "is this visitor signed in".
type AuthChecker interface {
	CheckAuth(ctx context.Context, cookies []*http.Cookie) (bool, error)
}

// CachedAuthChecker memoizes check-auth answers per cookie set for a short TTL.
type CachedAuthChecker struct {
	next  AuthChecker
	cache Cache
	ttl   time.Duration
}

func NewCachedAuthChecker(next AuthChecker, cache Cache, ttl time.Duration) *CachedAuthChecker {
	return &CachedAuthChecker{next: next, cache: cache, ttl: ttl}
}

func (c *CachedAuthChecker) CheckAuth(ctx context.Context, cookies []*http.Cookie) (bool, error) {
	if len(cookies) == 0 {
		return c.next.CheckAuth(ctx, cookies)
	}

	return GetOrSet(ctx, c.cache, authCacheKey(cookies), c.ttl, func() (bool, error) {
		return c.next.CheckAuth(ctx, cookies)
	})
}

// authCacheKey hashes the cookie set so raw session tokens never reach Redis.
func authCacheKey(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		pairs = append(pairs, cookie.Name+"="+cookie.Value)
	}
	sort.Strings(pairs)

	sum := sha256.Sum256([]byte(strings.Join(pairs, "; ")))
	return authCacheKeyPrefix + hex.EncodeToString(sum[:])
}
