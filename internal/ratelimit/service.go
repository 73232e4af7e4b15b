package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	redisClient "voice-assistant/internal/clients/redis"
	"voice-assistant/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const window = time.Minute

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service is a one-minute sliding window limiter keyed by caller. It uses
// Redis when available and an in-process window otherwise.
type Service struct {
	redis  *redisClient.Client
	limit  int
	logger *observability.Logger
	now    func() time.Time

	mu        sync.Mutex
	local     map[string][]time.Time
	lastSweep time.Time
}

// NewService creates a limiter allowing limit requests per minute. redis may
// be nil.
func NewService(redis *redisClient.Client, limit int, logger *observability.Logger) *Service {
	return &Service{
		redis:  redis,
		limit:  limit,
		logger: logger,
		now:    time.Now,
		local:  make(map[string][]time.Time),
	}
}

// CheckRateLimit records a request for key and reports whether it is allowed.
func (s *Service) CheckRateLimit(ctx context.Context, key string) (RateLimitResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rate_limit_key", Value: key},
		observability.Field{Key: "rate_limit", Value: s.limit},
	)

	if s.redis.IsEnabled() {
		result, err := s.checkRateLimitRedis(ctx, key)
		if err != nil {
			s.logger.WarnWithError(ctx, "Redis rate limit check failed, falling back to local window", err)
			return s.checkRateLimitLocal(key), nil
		}
		return result, nil
	}
	return s.checkRateLimitLocal(key), nil
}

// checkRateLimitRedis keeps request timestamps in a sorted set per key.
func (s *Service) checkRateLimitRedis(ctx context.Context, key string) (RateLimitResult, error) {
	redisKey := fmt.Sprintf("rl:%s", key)
	now := s.now()
	nowMs := now.UnixMilli()
	windowStartMs := now.Add(-window).UnixMilli()
	rdb := s.redis.GetClient()

	if err := rdb.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStartMs, 10)).Err(); err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to remove old entries: %w", err)
	}

	count, err := rdb.ZCard(ctx, redisKey).Result()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to count requests: %w", err)
	}

	if int(count) >= s.limit {
		oldest, err := rdb.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return s.denied(now, now.Add(window)), nil
		}
		return s.denied(now, time.UnixMilli(int64(oldest[0].Score)).Add(window)), nil
	}

	err = rdb.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(nowMs),
		Member: uuid.NewString(),
	}).Err()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to add request: %w", err)
	}

	if err := s.redis.Expire(ctx, redisKey, 2*window); err != nil {
		s.logger.WarnWithError(ctx, "failed to set expiration on rate limit key", err)
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count) - 1,
		ResetAt:   now.Add(window),
	}, nil
}

func (s *Service) checkRateLimitLocal(key string) RateLimitResult {
	now := s.now()
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= window {
		s.sweepLocal(cutoff)
		s.lastSweep = now
	}

	kept := s.local[key][:0]
	for _, t := range s.local[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= s.limit {
		s.local[key] = kept
		return s.denied(now, kept[0].Add(window))
	}

	s.local[key] = append(kept, now)
	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - len(kept) - 1,
		ResetAt:   now.Add(window),
	}
}

// sweepLocal drops callers with no requests after cutoff. s.mu must be held.
func (s *Service) sweepLocal(cutoff time.Time) {
	for key, times := range s.local {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(s.local, key)
		}
	}
}

func (s *Service) denied(now, resetAt time.Time) RateLimitResult {
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return RateLimitResult{
		Allowed:      false,
		Limit:        s.limit,
		Remaining:    0,
		ResetAt:      resetAt,
		RetryAfterMs: int(retryAfter.Milliseconds()),
	}
}
