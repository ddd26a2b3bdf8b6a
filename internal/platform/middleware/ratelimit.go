// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/constants"
	"github.com/taibuivan/tabletop/internal/platform/respond"
)

// # Rate Limiting

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests with 429 once the client's IP is over its limit.
//
// A limiter error fails open: the request is served and the error is logged,
// so an unreachable Redis never takes the API down.
func RateLimit(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			clientIP := RealIP(request)

			allowed, err := limiter.Allow(request.Context(), clientIP)
			if err != nil {
				logger.WarnContext(request.Context(), "rate_limit_check_failed",
					slog.String("ip", clientIP),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				logger.WarnContext(request.Context(), "rate_limit_exceeded",
					slog.String("ip", clientIP),
					slog.String("path", request.URL.Path),
				)
				retryAfter := int(math.Ceil(constants.RateLimitWindow.Seconds()))
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # In-Process Token Bucket

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per client in process memory.
// It is used when no Redis is configured, or in single-instance deployments.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	rps     float64
	burst   int
}

// NewMemoryLimiter creates a token-bucket limiter and starts its cleanup loop.
// The loop stops when ctx is cancelled.
func NewMemoryLimiter(ctx context.Context, rps float64, burst int) *MemoryLimiter {
	limiter := &MemoryLimiter{
		clients: make(map[string]*rateLimitClient),
		rps:     rps,
		burst:   burst,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.evictIdle(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

// Allow implements [Limiter]. It never returns an error.
func (limiter *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	clientInfo, found := limiter.clients[key]
	if !found {
		clientInfo = &rateLimitClient{limiter: rate.NewLimiter(rate.Limit(limiter.rps), limiter.burst)}
		limiter.clients[key] = clientInfo
	}
	clientInfo.lastSeen = time.Now()

	return clientInfo.limiter.Allow(), nil
}

func (limiter *MemoryLimiter) evictIdle(now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, clientInfo := range limiter.clients {
		if now.Sub(clientInfo.lastSeen) > constants.RateLimitClientTTL {
			delete(limiter.clients, ip)
		}
	}
}

// # Redis Fixed Window

// RedisLimiter shares a fixed-window counter per client across every API
// instance. Each client gets limit requests per window.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter creates a distributed limiter backed by client.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window}
}

// Allow implements [Limiter].
//
// INCR and EXPIRE NX run in one MULTI/EXEC, so the counter never outlives its
// window. EXPIRE NX leaves an existing TTL alone and repairs a key without one.
func (limiter *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := constants.RedisPrefixRateLimit + key

	var incr *redis.IntCmd
	_, err := limiter.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, limiter.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ratelimit: incr window: %w", err)
	}

	return incr.Val() <= limiter.limit, nil
}
