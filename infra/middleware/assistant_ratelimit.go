package middleware

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"assistant_server/pkg/apperr"
	"assistant_server/pkg/logger"
)

// RateLimiter applies a fixed window per client IP. With a Redis client the
// window is shared across instances; without one it degrades to in-process
// counters.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration

	mu      sync.Mutex
	local   map[string]*windowCounter
	stopped chan struct{}
}

type windowCounter struct {
	count     int
	expiresAt time.Time
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		redis:   redisClient,
		limit:   limit,
		window:  window,
		local:   make(map[string]*windowCounter),
		stopped: make(chan struct{}),
	}
	if redisClient == nil {
		go rl.cleanupLoop()
	}
	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, w := range rl.local {
				if now.After(w.expiresAt) {
					delete(rl.local, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopped:
			return
		}
	}
}

// Close stops the in-memory cleanup goroutine.
func (rl *RateLimiter) Close() {
	close(rl.stopped)
}

func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()

		count, retryAfter, err := rl.take(c, key)
		if err != nil {
			// A broken limiter backend must not take the API down.
			logger.WithError(err).Warn("rate limiter unavailable, allowing request")
			return c.Next()
		}

		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > rl.limit {
			c.Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			return apperr.RateLimited()
		}
		return c.Next()
	}
}

// take increments and returns the current window count for key.
func (rl *RateLimiter) take(c *fiber.Ctx, key string) (int, time.Duration, error) {
	if rl.redis != nil {
		redisKey := fmt.Sprintf("ratelimit:%s", key)
		count, err := rl.redis.Incr(c.Context(), redisKey).Result()
		if err != nil {
			return 0, 0, err
		}
		if count == 1 {
			rl.redis.Expire(c.Context(), redisKey, rl.window)
		}
		ttl, err := rl.redis.TTL(c.Context(), redisKey).Result()
		if err != nil || ttl < 0 {
			ttl = rl.window
		}
		return int(count), ttl, nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.local[key]
	if !ok || now.After(w.expiresAt) {
		w = &windowCounter{expiresAt: now.Add(rl.window)}
		rl.local[key] = w
	}
	w.count++
	return w.count, w.expiresAt.Sub(now), nil
}
