// Package ratelimit provides a per-client token bucket middleware.
package ratelimit

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

const defaultTTL = 3 * time.Minute

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var rateLimitExceededResp = errorResponse{
	Status:  "error",
	Message: "rate limit exceeded",
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client address. Buckets idle for
// longer than the TTL are dropped.
type Limiter struct {
	rps    rate.Limit
	burst  int
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func New(rps float64, burst int, ttl time.Duration, logger *slog.Logger) *Limiter {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// Handler rejects requests over the limit with 429 and a Retry-After header.
// Put it after middleware.RealIP so RemoteAddr holds the client address.
func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r.RemoteAddr)

		if retryAfter, ok := l.allow(key); !ok {
			l.logger.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("client", key),
				slog.String("path", r.URL.Path),
			)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, rateLimitExceededResp)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow takes a token for key. When none is available it returns the number
// of whole seconds until one will be.
func (l *Limiter) allow(key string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	res := v.limiter.ReserveN(now, 1)
	if !res.OK() {
		return int(l.ttl.Seconds()), false
	}

	delay := res.DelayFrom(now)
	if delay == 0 {
		return 0, true
	}
	res.CancelAt(now)

	return int(math.Max(1, math.Ceil(delay.Seconds()))), false
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.ttl {
		return
	}
	l.lastSweep = now

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.visitors)
}

func clientKey(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
