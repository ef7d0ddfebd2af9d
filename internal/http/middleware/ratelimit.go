package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters:  make(map[string]*clientLimiter),
		rate:      r,
		burst:     burst,
		ttl:       limiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (ipl *ipLimiter) get(ip string) *rate.Limiter {
	ipl.mu.Lock()
	defer ipl.mu.Unlock()

	now := ipl.now()
	if now.Sub(ipl.lastSweep) >= ipl.ttl {
		ipl.sweep(now)
	}

	cl, ok := ipl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(ipl.rate, ipl.burst)}
		ipl.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweep drops buckets idle for longer than ttl. Callers hold mu.
func (ipl *ipLimiter) sweep(now time.Time) {
	for ip, cl := range ipl.limiters {
		if now.Sub(cl.lastSeen) > ipl.ttl {
			delete(ipl.limiters, ip)
		}
	}
	ipl.lastSweep = now
}

// RateLimit allows perMinute requests per client IP with the given burst.
// Rejected requests get a 429 through the global error handler.
// A non-positive perMinute disables limiting.
func RateLimit(perMinute, burst int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	if burst <= 0 {
		burst = 1
	}

	il := newIPLimiter(rate.Limit(float64(perMinute)/60), burst)
	return func(c *fiber.Ctx) error {
		if !il.get(c.IP()).Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
		}
		return c.Next()
	}
}
