package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/pkg/config"
	"golang.org/x/time/rate"
)

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (cl *clientLimiter) allow() bool {
	cl.mu.Lock()
	cl.lastSeen = time.Now()
	cl.mu.Unlock()
	return cl.limiter.Allow()
}

func (cl *clientLimiter) idleSince(cutoff time.Time) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.lastSeen.Before(cutoff)
}

// CORS answers cross origin requests from the configured origins
func CORS(cfg config.SecurityConfig) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]bool, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}
	methods := strings.Join(cfg.CORSMethods, ", ")
	headers := strings.Join(cfg.CORSHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && origins[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestSizeLimitWithSize caps request bodies of write requests
func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			if c.Request.ContentLength > maxBytes {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"status":  "error",
					"message": "Request body too large",
					"error":   "INVALID_INPUT",
				})
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	limiters    sync.Map
	rps         rate.Limit
	burst       int
	cleanupOnce sync.Once
	stop        chan struct{}
}

// NewRateLimiter creates a limiter allowing rps requests per second per client
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
		stop:  make(chan struct{}),
	}
}

// Middleware returns the gin handler enforcing the limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	rl.cleanupOnce.Do(func() {
		go rl.cleanup(5*time.Minute, 10*time.Minute)
	})

	return func(c *gin.Context) {
		v, _ := rl.limiters.LoadOrStore(c.ClientIP(), &clientLimiter{
			limiter:  rate.NewLimiter(rl.rps, rl.burst),
			lastSeen: time.Now(),
		})

		if !v.(*clientLimiter).allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Rate limit exceeded. Please slow down your requests.",
				"error":   "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}

// Stop ends the background cleanup
func (rl *RateLimiter) Stop() {
	select {
	case <-rl.stop:
	default:
		close(rl.stop)
	}
}

func (rl *RateLimiter) cleanup(every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evict(time.Now().Add(-idle))
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) evict(cutoff time.Time) {
	rl.limiters.Range(func(key, value interface{}) bool {
		if value.(*clientLimiter).idleSince(cutoff) {
			rl.limiters.Delete(key)
		}
		return true
	})
}
