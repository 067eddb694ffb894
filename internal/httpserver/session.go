package httpserver

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guedes-jr/delizandra-storefront/internal/storefront"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "storefront_session"
	sessionKey    = "sessionID"

	cookieMaxAge = 60 * 60 * 24 * 30
)

// sessionMiddleware resolves the browser session id from the header or
// cookie, minting a new one for first-time visitors.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				id = cookie
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetCookie(sessionCookie, id, cookieMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// flowIdleTTL bounds how long an untouched session keeps its flows. Cookies
// outlive visits by weeks, so idle flows are dropped rather than pinned for
// the cookie's lifetime; the cart itself survives in its repository.
const flowIdleTTL = 30 * time.Minute

// flowRegistry holds the per-session UI flows: the paginated listing and the
// single open detail session. Opening a product replaces any previous one.
type flowRegistry struct {
	mu        sync.Mutex
	now       func() time.Time
	listings  map[string]*storefront.Listing
	details   map[string]*storefront.Session
	touched   map[string]time.Time
	nextSweep time.Time
}

func newFlowRegistry() *flowRegistry {
	return &flowRegistry{
		now:      time.Now,
		listings: make(map[string]*storefront.Listing),
		details:  make(map[string]*storefront.Session),
		touched:  make(map[string]time.Time),
	}
}

// touch stamps the session and, at most every half TTL, drops the flows of
// sessions idle past the TTL. Callers hold r.mu.
func (r *flowRegistry) touch(sessionID string) {
	now := r.now()
	r.touched[sessionID] = now
	if now.Before(r.nextSweep) {
		return
	}
	r.nextSweep = now.Add(flowIdleTTL / 2)
	for id, seen := range r.touched {
		if now.Sub(seen) <= flowIdleTTL {
			continue
		}
		if s, ok := r.details[id]; ok {
			s.Close()
		}
		delete(r.details, id)
		delete(r.listings, id)
		delete(r.touched, id)
	}
}

func (r *flowRegistry) listing(sessionID string, api storefront.Lister) *storefront.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch(sessionID)
	if l, ok := r.listings[sessionID]; ok {
		return l
	}
	l := storefront.NewListing(api)
	r.listings[sessionID] = l
	return l
}

func (r *flowRegistry) setDetail(sessionID string, s *storefront.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch(sessionID)
	r.details[sessionID] = s
}

func (r *flowRegistry) detail(sessionID string) (*storefront.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch(sessionID)
	s, ok := r.details[sessionID]
	if !ok {
		return nil, false
	}
	if s.Closed() {
		delete(r.details, sessionID)
		return nil, false
	}
	return s, true
}

func (r *flowRegistry) closeDetail(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.details[sessionID]; ok {
		s.Close()
		delete(r.details, sessionID)
	}
}
