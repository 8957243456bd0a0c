package server

import (
	"sync"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
)

// SessionCache provides a TTL-based cache for session discovery results.
type SessionCache struct {
	mu        sync.Mutex
	sessions  model.SessionMap
	timestamp time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewSessionCache creates a new cache. A ttl of 0 disables caching.
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{ttl: ttl, now: time.Now}
}

// Sessions returns the cached map if within TTL, otherwise calls discover.
// The caller must hold the server's host mutex.
func (c *SessionCache) Sessions(discover func() (model.SessionMap, error)) (model.SessionMap, error) {
	if c.ttl == 0 {
		return discover()
	}

	c.mu.Lock()
	if c.sessions != nil && c.now().Sub(c.timestamp) < c.ttl {
		sessions := c.sessions
		c.mu.Unlock()
		return sessions, nil
	}
	c.mu.Unlock()

	sessions, err := discover()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sessions = sessions
	c.timestamp = c.now()
	c.mu.Unlock()

	return sessions, nil
}

// Invalidate clears the cache.
func (c *SessionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions = nil
}
