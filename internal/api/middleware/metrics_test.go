package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/tripweave/internal/api/middleware"
)

func TestNewMetrics(t *testing.T) {
	m, err := middleware.NewMetrics()
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestMetrics_MiddlewarePassesThrough(t *testing.T) {
	m, err := middleware.NewMetrics()
	require.NoError(t, err)

	called := false
	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short", w.Body.String())
}

func TestNewPlannerMetrics(t *testing.T) {
	m, err := middleware.NewPlannerMetrics()
	require.NoError(t, err)
	assert.NotNil(t, m)

	// Recording must not panic with the noop meter
	m.RecordPlan("walking", 3, 120*time.Millisecond, nil)
	m.RecordPlan("driving", 0, time.Millisecond, errors.New("boom"))
}
