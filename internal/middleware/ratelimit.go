package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/festy23/member_search/internal/config"
)

const limiterCleanupInterval = 5 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	logger *zap.SugaredLogger

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a RateLimiter and starts its background cleanup.
// Call Stop to release it.
func NewRateLimiter(cfg config.RateLimitConfig, logger *zap.SugaredLogger) *RateLimiter {
	rl := &RateLimiter{
		cfg:      cfg,
		logger:   logger,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop(limiterCleanupInterval)

	return rl
}

// Stop ends the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware returns the rate limiting middleware.
// It is a no-op when the configuration disables rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.cfg.Enabled() {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if !rl.limiterFor(clientIP).Allow() {
			rl.logger.Warnw("rate limit exceeded",
				"client_ip", clientIP,
				"request_id", GetRequestID(c),
			)
			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			abortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}

		c.Next()
	}
}

// ClientCount returns the number of tracked clients.
func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) limiterFor(clientIP string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[clientIP]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst),
		}
		rl.limiters[clientIP] = cl
	}
	cl.lastAccess = time.Now()

	return cl.limiter
}

// retryAfterSeconds estimates the time until one token is refilled.
func (rl *RateLimiter) retryAfterSeconds() int {
	seconds := int(math.Ceil(1.0 / rl.cfg.RequestsPerSecond))
	if seconds < 1 {
		return 1
	}
	return seconds
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now(), 2*interval)
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops limiters idle for longer than ttl.
func (rl *RateLimiter) cleanup(now time.Time, ttl time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, ip)
		}
	}
}
