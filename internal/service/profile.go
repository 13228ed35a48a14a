package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/askbox/askbox/internal/metrics"
	"github.com/askbox/askbox/internal/model"
)

// ProfileCache holds public profiles keyed by username. It is created once by
// the app and handed to UserService; every profile write invalidates it.
// Entries are copies, so callers may modify what they get back.
type ProfileCache struct {
	lru *expirable.LRU[string, model.User]
}

func NewProfileCache(size int, ttl time.Duration) *ProfileCache {
	if size <= 0 {
		size = 1
	}
	return &ProfileCache{
		lru: expirable.NewLRU[string, model.User](size, nil, ttl),
	}
}

func (c *ProfileCache) Get(username string) (*model.User, bool) {
	user, ok := c.lru.Get(username)
	if !ok {
		metrics.ProfileCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.ProfileCacheLookups.WithLabelValues("hit").Inc()
	return &user, true
}

func (c *ProfileCache) Add(user *model.User) {
	if user == nil || !user.HasUsername() {
		return
	}
	c.lru.Add(*user.Username, *user)
}

func (c *ProfileCache) Invalidate(usernames ...*string) {
	for _, username := range usernames {
		if username != nil {
			c.lru.Remove(*username)
		}
	}
}

func (c *ProfileCache) Purge() {
	c.lru.Purge()
}

func (c *ProfileCache) Len() int {
	return c.lru.Len()
}
