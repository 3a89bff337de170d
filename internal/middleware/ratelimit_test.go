package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/festy23/member_search/internal/config"
)

func setupRateLimitRouter(t *testing.T, cfg config.RateLimitConfig) (*gin.Engine, *RateLimiter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(cfg, zap.NewNop().Sugar())
	t.Cleanup(rl.Stop)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/v1/members", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	return r, rl
}

func doRequest(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("disabled passes everything", func(t *testing.T) {
		r, rl := setupRateLimitRouter(t, config.RateLimitConfig{RequestsPerSecond: 0, Burst: 1})

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1234").Code)
		}
		assert.Equal(t, 0, rl.ClientCount())
	})

	t.Run("rejects beyond burst", func(t *testing.T) {
		r, _ := setupRateLimitRouter(t, config.RateLimitConfig{RequestsPerSecond: 0.5, Burst: 2})

		assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1234").Code)
		assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1234").Code)

		w := doRequest(r, "10.0.0.1:1234")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"error":{"code":"RATE_LIMITED","message":"too many requests"}}`, w.Body.String())
	})

	t.Run("limits clients independently", func(t *testing.T) {
		r, rl := setupRateLimitRouter(t, config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})

		assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1234").Code)
		assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "10.0.0.1:1234").Code)
		assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.2:1234").Code)
		assert.Equal(t, 2, rl.ClientCount())
	})

	t.Run("cleanup drops idle clients", func(t *testing.T) {
		r, rl := setupRateLimitRouter(t, config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
		doRequest(r, "10.0.0.1:1234")

		rl.cleanup(time.Now(), time.Hour)
		assert.Equal(t, 1, rl.ClientCount())

		rl.cleanup(time.Now().Add(2*time.Hour), time.Hour)
		assert.Equal(t, 0, rl.ClientCount())
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, zap.NewNop().Sugar())

		assert.NotPanics(t, func() {
			rl.Stop()
			rl.Stop()
		})
	})
}
