package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"medi-ai-go/pkg/log"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

const (
	defaultRateLimit  = 100
	defaultRateWindow = 15 * time.Minute
)

// RateLimiter 创建一个按客户端 IP 统计的固定窗口限流中间件。
// redisClient 非 nil 时用 Redis INCR+EXPIRE 计数（多实例共享窗口）；
// 为 nil 时退化为进程内窗口计数，限额依旧生效。
func RateLimiter(cfg RateLimitConfig, redisClient *redis.Client) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	local := newLocalWindow(cfg.Window)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		var count int64
		var err error
		if redisClient != nil {
			count, err = redisCount(c.Request.Context(), redisClient, clientIP, cfg.Window)
			if err != nil {
				// Redis 故障时退回本地计数，避免把限流故障放大成服务不可用
				log.Warnf("rate limit redis check failed, using local window: %v", err)
				count = local.incr(clientIP)
			}
		} else {
			count = local.incr(clientIP)
		}

		if count > int64(cfg.Limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": "Too many requests from this IP, please try again later.",
			})
			return
		}

		c.Next()
	}
}

func redisCount(ctx context.Context, rdb *redis.Client, clientIP string, window time.Duration) (int64, error) {
	key := fmt.Sprintf("ratelimit:%s", clientIP)

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	// 窗口在首个请求时开启
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to check rate limit: %w", err)
	}
	return incrCmd.Val(), nil
}

// localWindow 是进程内的固定窗口计数器。
type localWindow struct {
	mu      sync.Mutex
	window  time.Duration
	started time.Time
	counts  map[string]int64
}

func newLocalWindow(window time.Duration) *localWindow {
	return &localWindow{
		window:  window,
		started: time.Now(),
		counts:  make(map[string]int64),
	}
}

func (w *localWindow) incr(clientIP string) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if now.Sub(w.started) >= w.window {
		w.started = now
		w.counts = make(map[string]int64)
	}
	w.counts[clientIP]++
	return w.counts[clientIP]
}
