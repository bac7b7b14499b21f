package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiter tracks rate limits for a single identifier
type limiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages token buckets for many identifiers
type RateLimiter struct {
	limiters map[string]*limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idle     time.Duration
}

// NewRateLimiter creates a rate limiter allowing r requests per second with
// bursts of b. Buckets idle for longer than five minutes are dropped by
// Run.
func NewRateLimiter(r float64, b int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiter),
		rate:     rate.Limit(r),
		burst:    b,
		idle:     5 * time.Minute,
	}
}

// Allow reports whether identifier may make a request now. The second
// value is how long to wait when it may not.
func (rl *RateLimiter) Allow(identifier string) (bool, time.Duration) {
	rl.mu.Lock()
	l, ok := rl.limiters[identifier]
	if !ok {
		l = &limiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[identifier] = l
	}
	l.lastSeen = time.Now()
	rl.mu.Unlock()

	r := l.limiter.Reserve()
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return false, delay
	}
	return true, 0
}

// Run evicts idle buckets until ctx is done
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict(time.Now())
		}
	}
}

func (rl *RateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, l := range rl.limiters {
		if now.Sub(l.lastSeen) > rl.idle {
			delete(rl.limiters, id)
		}
	}
}

// Len is the number of tracked identifiers
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// PerIP creates middleware that rate limits by IP address
func PerIP(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, wait := rl.Allow(c.ClientIP()); !ok {
			tooManyRequests(c, wait, "Rate limit exceeded. Please try again later.")
			return
		}
		c.Next()
	}
}

// PerUser creates middleware that rate limits by user ID. Anonymous
// requests pass through; PerIP covers them.
func PerUser(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		if ok, wait := rl.Allow(userID); !ok {
			tooManyRequests(c, wait, "Rate limit exceeded. Please slow down.")
			return
		}
		c.Next()
	}
}

func tooManyRequests(c *gin.Context, wait time.Duration, msg string) {
	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": msg})
}
