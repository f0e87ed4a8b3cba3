package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushCounters(t *testing.T) {
	m := New()
	m.Delivered()
	m.Delivered()
	m.Failed(410)
	m.Failed(0)
	m.Pruned()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pushDeliveries.WithLabelValues("sent", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pushDeliveries.WithLabelValues("failed", "410")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pushDeliveries.WithLabelValues("failed", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pushPruned))
}

func TestGinMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/products/:id", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "desapego_http_requests_total"))
}
