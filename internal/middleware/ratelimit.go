package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"holocron/internal/logger"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter is a per-key token bucket held in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

func NewMemoryLimiter(requestsPerSecond float64, burst int) *MemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	return &MemoryLimiter{
		clients: make(map[string]*rate.Limiter),
		rps:     rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

func (m *MemoryLimiter) limiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.clients[key]
	if !ok {
		l = rate.NewLimiter(m.rps, m.burst)
		m.clients[key] = l
	}
	return l
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return m.limiter(key).Allow(), nil
}

// Cleanup drops idle buckets every interval until ctx is done.
func (m *MemoryLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			m.sweep(now)
		}
	}
}

func (m *MemoryLimiter) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, l := range m.clients {
		if l.TokensAt(now) >= float64(m.burst) {
			delete(m.clients, k)
		}
	}
}

func (m *MemoryLimiter) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// RedisLimiter counts requests per key in fixed windows shared by every instance.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Unix() / int64(r.window.Seconds())
	k := fmt.Sprintf("holocron:ratelimit:%s:%d", key, bucket)

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.window+time.Second).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(r.limit), nil
}

// RateLimit limits requests per client IP. Limiter failures let the request through.
func RateLimit(l Limiter) gin.HandlerFunc {
	log := logger.WithComponent("ratelimit")
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, err := l.Allow(c.Request.Context(), ip)
		if err != nil {
			log.Warn("rate limiter unavailable", "client_ip", ip, "error", err)
			c.Next()
			return
		}
		if !ok {
			log.Warn("rate limit exceeded", "client_ip", ip, "method", c.Request.Method, "path", c.Request.URL.Path)
			c.Header("Retry-After", strconv.Itoa(1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "Too many requests", "error": "rate_limited"})
			return
		}
		c.Next()
	}
}
