package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(config.RateLimitConfig{MaxRequests: 2, WindowMinutes: 1}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://hr.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://hr.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://hr.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGenerationLimiter_PerLearner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		util.SetClaims(c, &util.Claims{EmployeeID: c.GetHeader("X-Employee")})
		c.Next()
	})
	r.POST("/quizzes", GenerationLimiter(config.RateLimitConfig{GenerationPerHour: 1}), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	post := func(employee string) int {
		req := httptest.NewRequest(http.MethodPost, "/quizzes", nil)
		req.Header.Set("X-Employee", employee)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, post("e1"))
	assert.Equal(t, http.StatusTooManyRequests, post("e1"))
	assert.Equal(t, http.StatusCreated, post("e2"), "limits are tracked per learner")
}
