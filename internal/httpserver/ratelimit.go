package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleEvictAfter is how long a client IP may stay quiet before its
// limiter is dropped.
const idleEvictAfter = 10 * time.Minute

type ipClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters hands out one token bucket per client IP. Entries idle
// longer than the TTL are swept out so the map stays bounded on
// long-running servers.
type ipLimiters struct {
	mu        sync.Mutex
	clients   map[string]*ipClient
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(rps float64, burst int, ttl time.Duration) *ipLimiters {
	return &ipLimiters{
		clients: make(map[string]*ipClient),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.ttl {
		for addr, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.ttl {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &ipClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// rateLimit applies a per-client-IP token bucket to every request.
func rateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := newIPLimiters(rps, burst, idleEvictAfter)
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
