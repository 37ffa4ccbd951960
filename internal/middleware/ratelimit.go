package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/internal/domain/dto"
	"golang.org/x/time/rate"
)

// visitor is the token bucket of one client ip.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors is an in-memory set of per-ip limiters. Entries idle for longer
// than ttl are swept while serving requests.
type visitors struct {
	mu        sync.Mutex
	byIP      map[string]*visitor
	every     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

func (v *visitors) get(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	if now.Sub(v.lastSweep) > v.ttl {
		for k, vis := range v.byIP {
			if now.Sub(vis.lastSeen) > v.ttl {
				delete(v.byIP, k)
			}
		}
		v.lastSweep = now
	}

	vis, ok := v.byIP[ip]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(v.every, v.burst)}
		v.byIP[ip] = vis
	}
	vis.lastSeen = now
	return vis.limiter
}

// RateLimiter allows each client ip up to `limit` requests per `window`,
// refilled continuously, and answers 429 once the bucket is empty.
// A non-positive limit disables limiting.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(60, time.Minute))
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"error": "rate limit exceeded", "timestamp": "..."}
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := &visitors{
		byIP:  make(map[string]*visitor),
		every: rate.Every(window / time.Duration(limit)),
		burst: limit,
		ttl:   3 * window,
	}

	return func(c *gin.Context) {
		if !store.get(c.ClientIP(), time.Now()).Allow() {
			c.Header("Retry-After", retryAfter(window, limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}

// retryAfter is the refill interval of one token, in whole seconds (min 1).
func retryAfter(window time.Duration, limit int) string {
	secs := int((window / time.Duration(limit)).Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
