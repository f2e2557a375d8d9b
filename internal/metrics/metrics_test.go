package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
)

var _ llm.MetricsRecorder = (*Metrics)(nil)

func TestObserveLLMRequest(t *testing.T) {
	m := New()
	m.ObserveLLMRequest("quiz", true, 200*time.Millisecond)
	m.ObserveLLMRequest("quiz", false, time.Second)
	m.ObserveLLMRequest("quiz", true, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.llmRequests.WithLabelValues("quiz", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmRequests.WithLabelValues("quiz", "failure")))
}

func TestObserveFallback(t *testing.T) {
	m := New()
	m.ObserveFallback("curriculum", "ai service not configured")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("curriculum", "ai service not configured")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/day/:day", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/day/1", "/day/2", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpReqs.WithLabelValues("GET", "/day/:day", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpReqs.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "coach_http_requests_total"))
}
