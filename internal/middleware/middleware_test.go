package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/medagenda/agenda-api/internal/middleware"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(handlers...)
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func get(engine *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimiterRejectsBeyondBurst(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: 1, Burst: 2})
	engine := newEngine(middleware.RequestID(), rl.RateLimit())

	assert.Equal(t, http.StatusOK, get(engine, nil).Code)
	assert.Equal(t, http.StatusOK, get(engine, nil).Code)

	w := get(engine, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	engine := newEngine(middleware.RequestID())

	w := get(engine, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))
}

func TestRequestIDPreservedWhenSupplied(t *testing.T) {
	engine := newEngine(middleware.RequestID())

	w := get(engine, map[string]string{middleware.HeaderXRequestID: "gateway-trace-42"})
	assert.Equal(t, "gateway-trace-42", w.Header().Get(middleware.HeaderXRequestID))
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Recovery())
	engine.GET("/boom", func(c *gin.Context) {
		panic("unreachable state")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}
