// Package cache provides a TTL-bounded in-memory cache for recommendation
// responses, keyed by a digest of the request parameters.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"bookscout/internal/model"
)

// Cache holds computed recommendation responses for identical requests.
// Entries expire after the configured TTL and the least recently used
// entries are evicted once the size cap is reached.
type Cache struct {
	lru *expirable.LRU[string, *model.RecommendationResponse]
}

// New creates a cache holding up to size entries, each living for ttl.
func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, *model.RecommendationResponse](size, nil, ttl),
	}
}

// Key derives the cache key for a request. Two requests that would produce
// the same recommendations share a key; user identity is deliberately
// excluded so popular searches are served from cache across users.
func Key(req *model.RecommendationRequest) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(strings.TrimSpace(req.SearchTerm)))
	sb.WriteByte('|')
	fmt.Fprintf(&sb, "%d", req.MaxResults)
	for _, fb := range req.Feedback {
		fmt.Fprintf(&sb, "|%s:%s", fb.Category, fb.Rating)
	}
	sum := md5.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, if present and unexpired.
func (c *Cache) Get(key string) (*model.RecommendationResponse, bool) {
	return c.lru.Get(key)
}

// Put stores a response under key.
func (c *Cache) Put(key string, resp *model.RecommendationResponse) {
	c.lru.Add(key, resp)
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
