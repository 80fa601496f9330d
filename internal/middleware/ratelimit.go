package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/dental-lab/internal/httperr"
)

// trackedClients bounds how many per-IP limiters are kept in memory.
const trackedClients = 4096

type RateLimiter struct {
	mu      sync.Mutex
	clients *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	clients, _ := lru.New[string, *rate.Limiter](trackedClients)
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{clients: clients, limit: rate.Limit(rps), burst: burst}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.clients.Get(key); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.clients.Add(key, lim)
	return lim
}

// Allow reports whether one more request from key fits in its budget.
func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// Middleware rejects requests over the per-client budget with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Demasiadas solicitudes. Intenta nuevamente en unos segundos.")
			c.Abort()
			return
		}
		c.Next()
	}
}
