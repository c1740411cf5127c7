package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedRouter(handlerFunc gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", handlerFunc, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func performRequest(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.RemoteAddr = "192.0.2.10:52000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	key := "ratelimit:test:192.0.2.10"

	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	r := rateLimitedRouter(RateLimitMiddleware(rdb, "test", 5, time.Minute))
	w := performRequest(r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	key := "ratelimit:test:192.0.2.10"

	mock.ExpectIncr(key).SetVal(6)

	r := rateLimitedRouter(RateLimitMiddleware(rdb, "test", 5, time.Minute))
	w := performRequest(r)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimitFailsOpenOnRedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	key := "ratelimit:test:192.0.2.10"

	mock.ExpectIncr(key).SetErr(errors.New("connection refused"))

	r := rateLimitedRouter(RateLimitMiddleware(rdb, "test", 5, time.Minute))
	w := performRequest(r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitSkipsWithoutClient(t *testing.T) {
	r := rateLimitedRouter(RateLimitMiddleware(nil, "test", 5, time.Minute))
	w := performRequest(r)

	assert.Equal(t, http.StatusOK, w.Code)
}
