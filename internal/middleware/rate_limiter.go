package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/weather-now/internal/model"
)

// the visitor holds the rate limiter and last seen time for a specific IP address.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RefreshLimiter throttles the refresh action per client IP. It is the only
// de-duplication between refreshes: user interaction frequency bounds them.
type RefreshLimiter struct {
	perMinute float64
	burst     int
	idleAfter time.Duration
	trusted   map[string]struct{}

	mu       sync.Mutex
	visitors map[string]*visitor // key: ip
}

// NewRefreshLimiter allows perMinute refreshes per IP with the given burst.
// Visitors idle for longer than idleAfter are forgotten by Cleanup.
func NewRefreshLimiter(perMinute float64, burst int, idleAfter time.Duration) *RefreshLimiter {
	return &RefreshLimiter{
		perMinute: perMinute,
		burst:     burst,
		idleAfter: idleAfter,
		visitors:  make(map[string]*visitor),
	}
}

// TrustProxies lists the peer IPs allowed to name the client via
// X-Forwarded-For. Requests from any other peer are keyed by RemoteAddr.
func (l *RefreshLimiter) TrustProxies(ips ...string) *RefreshLimiter {
	l.trusted = make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			l.trusted[ip] = struct{}{}
		}
	}
	return l
}

// getLimiter returns the rate limiter for the given IP address, creating one if it does not exist.
func (l *RefreshLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(l.perMinute/60.0), l.burst)
		l.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup removes visitors that have not been seen for longer than idleAfter.
func (l *RefreshLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if time.Since(v.lastSeen) > l.idleAfter {
			delete(l.visitors, ip)
		}
	}
}

// StartCleanup runs Cleanup every minute until ctx is done.
func (l *RefreshLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Cleanup()
			}
		}
	}()
}

// Reset clears all visitor states. Used primarily for testing.
func (l *RefreshLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.visitors {
		delete(l.visitors, k)
	}
}

func (l *RefreshLimiter) visitorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// clientIP keys the request by its peer address. X-Forwarded-For is only
// consulted when the peer is a trusted proxy; then the right-most hop that is
// not itself trusted is the client.
func (l *RefreshLimiter) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if _, ok := l.trusted[peer]; !ok {
		return peer
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, ok := l.trusted[hop]; !ok {
			return hop
		}
	}
	return peer
}

// Middleware responds with 429 and a JSON error once the caller's budget is spent.
func (l *RefreshLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.getLimiter(l.clientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			errMsg := "Rate limit exceeded: refresh requested too often"
			resp := model.Response{
				Error:   &errMsg,
				Message: "Too Many Requests",
			}
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		next.ServeHTTP(w, r)
	})
}
