package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(registry, ServiceName)

	engine := gin.New()
	engine.Use(metrics.Middleware())
	engine.GET("/posts/:post_id/", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	for _, path := range []string{"/posts/1/", "/posts/2/", "/missing"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	t.Run("Route template labels", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `http_server_requests_total{method="GET",path="/posts/:post_id/",service="yatube",status="200"} 2`)
		assert.Contains(t, body, `http_server_requests_total{method="GET",path="unmatched",service="yatube",status="404"} 1`)
		assert.Contains(t, body, `http_server_in_flight_requests{service="yatube"} 1`)
	})
}
