package security

import (
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/util"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS 仅允许白名单中的 Origin
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}
		}
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, Origin, Cache-Control, X-Requested-With")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

// KeyFunc 决定限流的维度
type KeyFunc func(c *gin.Context) string

func ClientIPKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// LearnerKey 需放在 AuthMiddleware 之后；没有令牌时退回按 IP
func LearnerKey(c *gin.Context) string {
	if claims := util.GetUserFromContext(c); claims != nil {
		if claims.EmployeeID != "" {
			return "employee:" + claims.EmployeeID
		}
		if claims.UserID != "" {
			return "user:" + claims.UserID
		}
	}
	return ClientIPKey(c)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
}

func newLimiterStore(burst int, window time.Duration) *limiterStore {
	s := &limiterStore{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(burst)),
		burst:    burst,
	}
	go s.evict(window * 3)
	return s
}

// evict 每分钟清理一次空闲条目
func (s *limiterStore) evict(idle time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		for key, v := range s.visitors {
			if time.Since(v.lastSeen) > idle {
				delete(s.visitors, key)
			}
		}
		s.mu.Unlock()
	}
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.every, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = time.Now()
	s.mu.Unlock()
	return v.limiter.Allow()
}

func limit(burst int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	store := newLimiterStore(burst, window)
	retryAfter := strconv.Itoa(int((window / time.Duration(burst)).Seconds()) + 1)

	return func(c *gin.Context) {
		if !store.allow(key(c)) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, util.Response{
				Code:    http.StatusTooManyRequests,
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}

// RateLimiter 全局按客户端 IP 限流
func RateLimiter(cfg config.RateLimitConfig) gin.HandlerFunc {
	maxRequests := cfg.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	return limit(maxRequests, window, ClientIPKey)
}

// GenerationLimiter 按学习者限制出题频率
func GenerationLimiter(cfg config.RateLimitConfig) gin.HandlerFunc {
	perHour := cfg.GenerationPerHour
	if perHour <= 0 {
		perHour = 30
	}
	return limit(perHour, time.Hour, LearnerKey)
}
