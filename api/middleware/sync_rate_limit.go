package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/pdadev/trackday-backend/api/responses"
	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
	"github.com/pdadev/trackday-backend/pkg/logger"
)

// SyncLimiterStore is the counter surface the limiter needs from redis.
type SyncLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	CounterKey(string) string
}

// SyncRateLimitPolicy caps how often one session may push selection updates.
type SyncRateLimitPolicy struct {
	window time.Duration
	limit  int
}

// NewSyncRateLimitPolicy builds a policy with the supplied window and limit.
func NewSyncRateLimitPolicy(window time.Duration, limit int) SyncRateLimitPolicy {
	return SyncRateLimitPolicy{window: window, limit: limit}
}

func (p SyncRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

// SyncRateLimit throttles selection-sync writes per checkout session. A
// limiter failure lets the request through; the sync path stays available
// when the counter backend is not.
func SyncRateLimit(policy SyncRateLimitPolicy, store SyncLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := SessionIDFromContext(ctx)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := store.CounterKey("sync:" + sessionID)
			count, err := store.IncrWithTTL(ctx, key, policy.window)
			if err != nil {
				if logg != nil {
					logg.Warn(ctx, "sync rate limiter unavailable, letting request through")
				}
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(policy.limit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "selection sync rate limit exceeded")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many selection updates"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
