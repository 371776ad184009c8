package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiterConfig describes one token bucket per client key.
type RateLimiterConfig struct {
	// Name labels rejections in logs ("api", "payment").
	Name string

	// Rate is the refill rate in tokens per second.
	Rate float64

	// Burst is the bucket capacity.
	Burst int

	// IdleTTL drops buckets that have been full and unused this long.
	IdleTTL time.Duration

	// KeyFunc picks the bucket for a request. Defaults to GetClientIP.
	KeyFunc func(r *http.Request) string
}

// APIRateLimit covers cart, order and catalog traffic.
func APIRateLimit() RateLimiterConfig {
	return RateLimiterConfig{Name: "api", Rate: 10, Burst: 20, IdleTTL: time.Minute}
}

// PaymentRateLimit covers order creation and payment verification, each of
// which costs a gateway round trip or a locking transaction.
func PaymentRateLimit() RateLimiterConfig {
	return RateLimiterConfig{Name: "payment", Rate: 1, Burst: 5, IdleTTL: time.Minute}
}

type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimiter is an in-memory per-key token bucket limiter.
type RateLimiter struct {
	cfg RateLimiterConfig
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRateLimiter starts a limiter and its idle-bucket sweeper. Call Stop to
// end the sweeper.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = GetClientIP
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	rl := &RateLimiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Allow takes a token for key. When none is left it reports how long until
// the next one is available.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rl.cfg.Burst), last: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(float64(rl.cfg.Burst), b.tokens+now.Sub(b.last).Seconds()*rl.cfg.Rate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if rl.cfg.Rate <= 0 {
		return false, rl.cfg.IdleTTL
	}
	return false, time.Duration((1 - b.tokens) / rl.cfg.Rate * float64(time.Second))
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.cfg.IdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, b := range rl.buckets {
				if now.Sub(b.last) > rl.cfg.IdleTTL {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware rejects requests over budget with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.cfg.KeyFunc(r)
		ok, wait := rl.Allow(key)
		if !ok {
			secs := int(math.Ceil(wait.Seconds()))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			GetLogger(r.Context()).Warn("rate limited", "limiter", rl.cfg.Name, "key", key, "retry_after_s", secs)
			respondTooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// peer address.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
