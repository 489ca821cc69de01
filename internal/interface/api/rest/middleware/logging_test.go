package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskSecrets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"password":"hunter2"}`, `{"password":"***"}`},
		{"spaced", `{"name":"a", "password" : "x\"y"}`, `{"name":"a", "password" : "***"}`},
		{"nested list", `{"users":[{"password":"a"},{"password":"b"}]}`, `{"users":[{"password":"***"},{"password":"***"}]}`},
		{"no secret", `{"name":"a"}`, `{"name":"a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSecrets(tt.in))
		})
	}
}

func TestRequestLogGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_requests"}, []string{"result"})

	body := `{"name":"Ana","password":"s3cret","pad":"` + strings.Repeat("x", maxLogBodySize) + `"}`

	var seen string
	r := gin.New()
	r.Use(RequestLogGin(zap.New(core), counter))
	r.POST("/users", func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		seen = string(raw)
		c.Status(http.StatusCreated)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)

	// handler sees the untouched body
	assert.Equal(t, body, seen)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	logged, _ := fields["body"].(string)
	assert.NotContains(t, logged, "s3cret")
	assert.LessOrEqual(t, len(logged), maxLogBodySize)
	assert.Equal(t, int64(http.StatusCreated), fields["status"])
	assert.Equal(t, "/users", fields["url"])

	assert.Equal(t, float64(1), testutil.ToFloat64(counter.WithLabelValues("app_requests_total")))
}
