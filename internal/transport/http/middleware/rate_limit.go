package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/events-api/internal/transport/http/response"
)

// RouteLimit is a token bucket: Capacity tokens refilled linearly over Window.
type RouteLimit struct {
	Name     string
	Capacity int
	Window   time.Duration
}

// PrincipalFunc extracts the rate-limit principal from a request.
type PrincipalFunc func(*http.Request) string

// PrincipalIP keys on the client IP. Run it behind chi's RealIP so
// RemoteAddr already reflects forwarding headers.
func PrincipalIP() PrincipalFunc {
	return func(r *http.Request) string {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host == "" {
			return "ip:unknown"
		}
		return "ip:" + host
	}
}

// RateLimit applies a Redis-backed token bucket shared by every instance.
// Redis failures let the request through.
func RateLimit(rdb redis.Scripter, limit RouteLimit, principal PrincipalFunc) func(http.Handler) http.Handler {
	if principal == nil {
		principal = PrincipalIP()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("rl:%s:%s", limit.Name, principal(r))

			allowed, remaining, retryAfter, err := takeToken(r, rdb, key, time.Now().UnixMilli(), limit)
			if err != nil {
				zlog.Warn().Err(err).Str("limit", limit.Name).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				}
				response.Fail(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}

// tokens are stored x1000 so the bucket stays in integer arithmetic.
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2]) * 1000
local window = tonumber(ARGV[3])

local bucket = redis.call("HMGET", key, "tokens", "ts")
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])

if tokens == nil or ts == nil then
  tokens = capacity
  ts = now
end

local delta = now - ts
if delta < 0 then delta = 0 end

tokens = math.min(capacity, tokens + math.floor(delta * capacity / window))

local allowed = 0
if tokens >= 1000 then
  tokens = tokens - 1000
  allowed = 1
end

redis.call("HSET", key, "tokens", tokens, "ts", now)
redis.call("PEXPIRE", key, window)

local retryAfterMs = 0
if allowed == 0 then
  retryAfterMs = math.ceil((1000 - tokens) * window / capacity)
end

return {allowed, math.floor(tokens / 1000), retryAfterMs}
`)

func takeToken(r *http.Request, rdb redis.Scripter, key string, nowMs int64, limit RouteLimit) (allowed bool, remaining int, retryAfterSec int64, err error) {
	res, err := rateLimitScript.Run(r.Context(), rdb, []string{key}, nowMs, limit.Capacity, limit.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, 0, err
	}
	if len(res) != 3 {
		return false, 0, 0, fmt.Errorf("unexpected rate limit reply of %d values", len(res))
	}
	allowed = res[0] == 1
	remaining = int(res[1])
	if res[2] > 0 {
		retryAfterSec = (res[2] + 999) / 1000
	}
	return allowed, remaining, retryAfterSec, nil
}
