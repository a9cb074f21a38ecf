package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/VitaminP8/yatube/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	t.Run("Generated", func(t *testing.T) {
		w := perform(engine, httptest.NewRequest(http.MethodGet, "/", nil))
		rid := w.Header().Get(RequestIDHeader)
		assert.Len(t, rid, 36)
		assert.Equal(t, rid, w.Body.String())
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := perform(engine, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(zap.New(core)))
	engine.GET("/posts/:post_id/", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(engine, httptest.NewRequest(http.MethodGet, "/posts/7/", nil))
	perform(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/posts/:post_id/", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.NotEmpty(t, fields["request_id"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	engine := gin.New()
	engine.Use(Recovery(zap.New(core)))
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := perform(engine, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{apperr.MsgInternal}, body[apperr.MessageField])
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestIPThrottle(t *testing.T) {
	t.Run("Burst then reject", func(t *testing.T) {
		throttle := NewIPThrottle(1, 2)
		now := time.Unix(1000, 0)
		throttle.now = func() time.Time { return now }

		assert.True(t, throttle.Allow("10.0.0.1"))
		assert.True(t, throttle.Allow("10.0.0.1"))
		assert.False(t, throttle.Allow("10.0.0.1"))
		assert.True(t, throttle.Allow("10.0.0.2"))

		now = now.Add(time.Second)
		assert.True(t, throttle.Allow("10.0.0.1"))
	})

	t.Run("Idle visitors are dropped", func(t *testing.T) {
		throttle := NewIPThrottle(1, 1)
		now := time.Unix(1000, 0)
		throttle.now = func() time.Time { return now }

		throttle.Allow("10.0.0.1")
		now = now.Add(2 * visitorIdle)
		throttle.Allow("10.0.0.2")
		_, kept := throttle.visitors["10.0.0.1"]
		assert.False(t, kept)
	})

	t.Run("Middleware answers 429", func(t *testing.T) {
		engine := gin.New()
		engine.POST("/jwt/create/", NewIPThrottle(0.001, 1).Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := perform(engine, httptest.NewRequest(http.MethodPost, "/jwt/create/", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = perform(engine, httptest.NewRequest(http.MethodPost, "/jwt/create/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		var body map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{apperr.MsgThrottled}, body[apperr.MessageField])
	})
}

func TestBodyLimit(t *testing.T) {
	engine := gin.New()
	engine.Use(BodyLimit(8))
	engine.POST("/", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	t.Run("Within the limit", func(t *testing.T) {
		w := perform(engine, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("12345678")))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "12345678", w.Body.String())
	})

	t.Run("Over the limit", func(t *testing.T) {
		w := perform(engine, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456789")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
