// Package cache keeps rendered pages and lets handlers mark them stale.
//
// Staleness is tracked with generation counters instead of deleting entries:
// a page's version is built from the layout generation of every ancestor
// path plus its own page generation, so one increment invalidates a whole
// subtree and old entries simply expire.
package cache

import (
	"context"
	"strings"
	"time"
)

// Scope selects what an invalidation covers.
type Scope string

const (
	// ScopePage invalidates exactly one path.
	ScopePage Scope = "page"
	// ScopeLayout invalidates a path and everything rendered beneath it.
	ScopeLayout Scope = "layout"
)

// Invalidator marks cached output as stale so that the next render refetches.
type Invalidator interface {
	Invalidate(ctx context.Context, path string, scope Scope) error
}

// Cache stores rendered pages keyed by path version.
type Cache interface {
	Invalidator
	// Version returns the current version string for path.
	Version(ctx context.Context, path string) (string, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// normalize returns path with a leading slash and without a trailing one.
func normalize(path string) string {
	path = "/" + strings.Trim(path, "/")
	return path
}

// prefixes lists "/", "/a", "/a/b" for "/a/b".
func prefixes(path string) []string {
	path = normalize(path)
	out := []string{"/"}
	if path == "/" {
		return out
	}
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i := range segments {
		out = append(out, "/"+strings.Join(segments[:i+1], "/"))
	}
	return out
}

func generationKey(path string, scope Scope) string {
	return string(scope) + ":" + normalize(path)
}

// versionKeys are the generation counters that make up the version of path.
func versionKeys(path string) []string {
	ps := prefixes(path)
	keys := make([]string, 0, len(ps)+1)
	for _, p := range ps {
		keys = append(keys, generationKey(p, ScopeLayout))
	}
	return append(keys, generationKey(path, ScopePage))
}
