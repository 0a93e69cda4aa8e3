package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleWindow = time.Minute

// Throttle scopes, one per endpoint class.
const (
	ScopeAnon         = "anon"
	ScopeUser         = "user"
	ScopeReviewCreate = "review-create"
	ScopeReviewList   = "review-list"
	ScopeReviewDetail = "review-detail"
)

func callerKey(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func throttle(rdb *redis.Client, logger *zap.Logger, scope string, limit int, w http.ResponseWriter, r *http.Request) bool {
	if limit <= 0 {
		return true
	}

	key := fmt.Sprintf("throttle:%s:%s", scope, callerKey(r))

	count, err := rdb.Incr(r.Context(), key).Result()
	if err != nil {
		// Redis being down should not take the API with it.
		logger.Error("Throttle counter failed", zap.Error(err), zap.String("scope", scope))
		return true
	}

	if count == 1 {
		rdb.Expire(r.Context(), key, throttleWindow)
	}

	if count > int64(limit) {
		ttl := rdb.TTL(r.Context(), key).Val()
		if ttl <= 0 {
			ttl = throttleWindow
		}

		logger.Warn("Request throttled",
			zap.String("scope", scope),
			zap.String("caller", callerKey(r)),
			zap.Int64("count", count),
		)

		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
		utils.ResponseTooManyRequests(w,
			fmt.Sprintf("Request was throttled. Expected available in %d seconds.", int(ttl.Seconds())))
		return false
	}

	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", int64(limit)-count))
	return true
}

// Throttle bounds the request rate for one scope, keyed by user when
// authenticated and by IP otherwise. Fixed one-minute window in redis.
func Throttle(rdb *redis.Client, logger *zap.Logger, scope string, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !throttle(rdb, logger, scope, limit, w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GlobalThrottle applies the anonymous or authenticated global limit
// depending on the resolved caller. Mount after AuthOptional.
func GlobalThrottle(rdb *redis.Client, logger *zap.Logger, config utils.ThrottleConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, limit := ScopeAnon, config.Anon
			if _, ok := utils.GetUserIDFromContext(r.Context()); ok {
				scope, limit = ScopeUser, config.User
			}

			if !throttle(rdb, logger, scope, limit, w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
