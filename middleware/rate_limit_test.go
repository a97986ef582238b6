package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitRouter(limit int) (*gin.Engine, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(string(UserIDKey), "user-a")
		c.Next()
	})
	r.Use(RateLimiter(db, limit, time.Minute))
	r.POST("/write", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, mock
}

func TestRateLimiter(t *testing.T) {
	t.Run("under the limit", func(t *testing.T) {
		r, mock := rateLimitRouter(5)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("ratelimit:user-a").SetVal(1)
		mock.ExpectExpire("ratelimit:user-a", time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("over the limit", func(t *testing.T) {
		r, mock := rateLimitRouter(5)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("ratelimit:user-a").SetVal(6)
		mock.ExpectExpire("ratelimit:user-a", time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()
		mock.ExpectTTL("ratelimit:user-a").SetVal(30 * time.Second)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down fails open", func(t *testing.T) {
		r, mock := rateLimitRouter(5)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("ratelimit:user-a").SetErr(assert.AnError)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
