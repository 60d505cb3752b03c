package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter limita requests por principal usando una ventana fija en Redis.
// Con Redis == nil no limita nada (dev sin Redis levantado).
type RateLimiter struct {
	Redis  *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

func NewRateLimiter(r *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window}
}

// ByActor limita por (kind, id) del principal autenticado.
// Si Redis falla, deja pasar: preferimos degradar antes que tirar el endpoint.
func (rl *RateLimiter) ByActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl == nil || rl.Redis == nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := GetClaims(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("%s:%s:%s", rl.Prefix, claims.Kind, claims.ActorID)
		count, err := rl.Redis.Incr(r.Context(), key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.Redis.Expire(r.Context(), key, rl.Window)
		}
		if count > int64(rl.Limit) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
