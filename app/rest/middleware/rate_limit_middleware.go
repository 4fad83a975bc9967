package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	apperrors "product-service/app/utils/errors"
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

// RateLimitPolicy is a token bucket applied per client IP.
type RateLimitPolicy struct {
	Limit rate.Limit
	Burst int
}

// Default policies for the credential endpoints.
var (
	LoginRateLimit    = RateLimitPolicy{Limit: rate.Every(12 * time.Second), Burst: 5}
	RegisterRateLimit = RateLimitPolicy{Limit: rate.Every(time.Minute), Burst: 3}
)

// RateLimiter tracks one limiter per client IP and route
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter. Idle visitors are evicted until ctx
// is done.
func NewRateLimiter(ctx context.Context) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}

	go rl.cleanupVisitors(ctx)
	return rl
}

// Limit returns middleware enforcing policy for the route it is attached to
func (rl *RateLimiter) Limit(policy RateLimitPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + " " + c.Path()

			allowed, retryAfter := rl.allow(key, policy)
			if !allowed {
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(retryAfter))
				return apperrors.New(apperrors.ErrCodeRateLimitExceeded, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}

// allow consumes a token for key. When refused it reports the whole seconds
// until the next token.
func (rl *RateLimiter) allow(key string, policy RateLimitPolicy) (bool, int) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(policy.Limit, policy.Burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	if v.limiter.AllowN(now, 1) {
		return true, 0
	}

	reservation := v.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, int(visitorTTL.Seconds())
	}
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)

	return false, int(math.Ceil(delay.Seconds()))
}

func (rl *RateLimiter) cleanupVisitors(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, key)
		}
	}
}
