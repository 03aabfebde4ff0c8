package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/logger"
)

// RateStore counts hits per key inside a fixed window.
type RateStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

type RedisRateStore struct {
	rdb *redis.Client
}

func NewRedisRateStore(rdb *redis.Client) *RedisRateStore {
	return &RedisRateStore{rdb: rdb}
}

// hitScript increments the counter and gives it a TTL in one step. A key
// left without a TTL gets one on its next hit.
var hitScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {n, ttl}
`)

func (s *RedisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	res, err := hitScript.Run(ctx, s.rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	return res[0], time.Now().Add(time.Duration(res[1]) * time.Millisecond), nil
}

// MemoryRateStore is a single-process RateStore for development and tests.
type MemoryRateStore struct {
	mu        sync.Mutex
	now       func() time.Time
	windows   map[string]*memWindow
	nextSweep time.Time
}

type memWindow struct {
	count   int64
	resetAt time.Time
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{now: time.Now, windows: map[string]*memWindow{}}
}

func (s *MemoryRateStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(window)
	}

	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memWindow{resetAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// sweep drops expired windows. Callers hold mu.
func (s *MemoryRateStore) sweep(now time.Time) {
	for k, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, k)
		}
	}
}

// RateLimit allows max requests per client ip, method and route within window.
func RateLimit(store RateStore, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "rl:" + c.IP() + ":" + c.Method() + ":" + c.Route().Path

		count, resetAt, err := store.Hit(c.UserContext(), key, window)
		if err != nil {
			// fail open
			logger.WithRequest(c).WithError(err).Warn("rate limiter unavailable")
			return c.Next()
		}

		remaining := max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		resetIn := int(time.Until(resetAt).Seconds())
		if resetIn < 0 {
			resetIn = 0
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

		if int(count) > max {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(resetIn))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests",
			})
		}
		return c.Next()
	}
}
