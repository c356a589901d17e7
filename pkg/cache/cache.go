// Package cache keeps recently resolved account id to username lookups.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"igclient/pkg/metrics"
)

// UsernameCache is an expiring LRU of account id -> username
type UsernameCache struct {
	lru *expirable.LRU[string, string]
}

// NewUsernameCache creates a cache holding at most size entries for ttl each
func NewUsernameCache(size int, ttl time.Duration) *UsernameCache {
	return &UsernameCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

// Get returns the cached username for id
func (c *UsernameCache) Get(id string) (string, bool) {
	username, ok := c.lru.Get(id)
	if ok {
		metrics.CacheHit()
		return username, true
	}
	metrics.CacheMiss()
	return "", false
}

// Set records the username for id
func (c *UsernameCache) Set(id, username string) {
	c.lru.Add(id, username)
}

// Delete forgets id
func (c *UsernameCache) Delete(id string) {
	c.lru.Remove(id)
}

// Len reports the number of live entries
func (c *UsernameCache) Len() int {
	return c.lru.Len()
}
