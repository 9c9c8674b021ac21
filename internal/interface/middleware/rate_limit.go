package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/oksasatya/portfolio-cms/pkg/response"
)

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request
type KeyFunc func(c *gin.Context) string

// KeyByIP returns a key function that limits by client IP only
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath returns a key function that limits by client IP and request path
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// Lua script: atomic INCR + set EXPIRE when the key is new
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

type AllowFunc func(*gin.Context) bool // return true for bypass limit

// RateLimit allows limit requests per window and key. With a redis client the
// counter is shared between processes (fixed window, atomic Lua); without one
// an in-process token bucket per key is used.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if limit <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	check := redisCheck(rdb, limit, window)
	if rdb == nil {
		check = newMemoryLimiter(limit, window).check
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		remaining, reset, ok := check(c, keyFn(c))
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))
		if !ok {
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			response.AbortError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

type checkFunc func(c *gin.Context, key string) (remaining, resetSec int, ok bool)

func redisCheck(rdb *redis.Client, limit int, window time.Duration) checkFunc {
	return func(c *gin.Context, key string) (int, int, bool) {
		ctx := c.Request.Context()
		countI, err := incrExpireScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Result()
		if err != nil {
			// fail open when redis is unavailable
			return limit, 0, true
		}
		count := toInt(countI)
		resetSec := 0
		if ttl, _ := rdb.PTTL(ctx, key).Result(); ttl > 0 {
			resetSec = int(math.Ceil(ttl.Seconds()))
		}
		return max(0, limit-count), resetSec, count <= limit
	}
}

type memoryLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	burst     int
	every     rate.Limit
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newMemoryLimiter(limit int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		limiters: make(map[string]*limiterEntry),
		burst:    limit,
		every:    rate.Every(window / time.Duration(limit)),
		idle:     window,
		now:      time.Now,
	}
}

// sweep drops buckets idle for a full window; such a bucket has refilled and
// is indistinguishable from a new one. Caller must hold mu.
func (m *memoryLimiter) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.idle {
		return
	}
	m.lastSweep = now
	for k, e := range m.limiters {
		if now.Sub(e.lastSeen) >= m.idle {
			delete(m.limiters, k)
		}
	}
}

func (m *memoryLimiter) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

func (m *memoryLimiter) check(_ *gin.Context, key string) (int, int, bool) {
	now := m.now()
	m.mu.Lock()
	m.sweep(now)
	e, ok := m.limiters[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(m.every, m.burst)}
		m.limiters[key] = e
	}
	e.lastSeen = now
	allowed := e.lim.AllowN(now, 1)
	remaining := int(e.lim.TokensAt(now))
	m.mu.Unlock()

	if remaining < 0 {
		remaining = 0
	}
	reset := 0
	if !allowed {
		reset = int(math.Ceil(time.Duration(float64(time.Second) / float64(m.every)).Seconds()))
	}
	return remaining, reset, allowed
}

func toInt(v interface{}) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	case string:
		i, _ := strconv.Atoi(x)
		return i
	}
	return 0
}
