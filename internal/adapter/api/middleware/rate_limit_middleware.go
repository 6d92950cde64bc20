package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"barterhub/pkg/logger"
)

// ipLimiter tracks a token bucket per client IP. An IP that drains its
// bucket is blocked for a full window before tokens return.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientState
	rate    int
	window  time.Duration
}

type clientState struct {
	tokens     int
	lastSeen   time.Time
	blockUntil time.Time
}

func newIPLimiter(rate int, window time.Duration) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*clientState),
		rate:    rate,
		window:  window,
	}

	go l.evictIdle()

	return l
}

func (l *ipLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if retryAfter, limited := l.take(c.RealIP()); limited {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(retryAfter.Seconds()),
				})
			}

			return next(c)
		}
	}
}

// take consumes a token for the IP, reporting how long to back off when the
// budget is spent.
func (l *ipLimiter) take(ip string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	client, ok := l.clients[ip]
	if !ok {
		l.clients[ip] = &clientState{tokens: l.rate - 1, lastSeen: now}
		return 0, false
	}

	if now.Before(client.blockUntil) {
		return time.Until(client.blockUntil), true
	}
	if !client.blockUntil.IsZero() && now.After(client.blockUntil) {
		client.blockUntil = time.Time{}
		client.tokens = l.rate
	}

	refill := int(now.Sub(client.lastSeen) / l.window * time.Duration(l.rate))
	client.tokens += refill
	if client.tokens > l.rate {
		client.tokens = l.rate
	}
	client.lastSeen = now

	if client.tokens <= 0 {
		client.blockUntil = now.Add(l.window)
		logger.Warn("Rate limiting activated for IP %s", ip)
		return l.window, true
	}

	client.tokens--
	return 0, false
}

func (l *ipLimiter) evictIdle() {
	for {
		time.Sleep(time.Hour)

		l.mu.Lock()
		cutoff := time.Now().Add(-2 * time.Hour)
		for ip, client := range l.clients {
			if client.lastSeen.Before(cutoff) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

var (
	generalLimiter = newIPLimiter(60, time.Minute) // 60 requests/min
	authLimiter    = newIPLimiter(5, time.Minute)  // 5 attempts/min
	uploadLimiter  = newIPLimiter(10, time.Minute) // 10 uploads/min
)

func GeneralRateLimit() echo.MiddlewareFunc {
	return generalLimiter.Middleware()
}

func AuthRateLimit() echo.MiddlewareFunc {
	return authLimiter.Middleware()
}

func UploadRateLimit() echo.MiddlewareFunc {
	return uploadLimiter.Middleware()
}
