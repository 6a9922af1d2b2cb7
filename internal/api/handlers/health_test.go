package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/KartikTulsian/karyasetu/internal/api/handlers"
	"github.com/KartikTulsian/karyasetu/internal/testutils"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}

func newHealthRouter(err error) *testutils.HTTPTestSuite {
	httpSuite := testutils.SetupHTTPTest()
	h := handlers.NewHealthHandler(stubPinger{err: err}, "test")
	httpSuite.Router.GET("/health", h.Health)
	httpSuite.Router.GET("/health/ready", h.Ready)
	httpSuite.Router.GET("/health/live", h.Live)
	httpSuite.Router.NoRoute(handlers.NotFound)
	return httpSuite
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		httpSuite := newHealthRouter(nil)

		var response handlers.HealthResponse
		testutils.AssertJSONResponse(t, httpSuite.MakeRequest(http.MethodGet, "/health", nil), http.StatusOK, &response)
		assert.True(t, response.Success)
		assert.Equal(t, "healthy", response.Services["database"])
		assert.Equal(t, "test", response.Version)

		assert.Equal(t, http.StatusOK, httpSuite.MakeRequest(http.MethodGet, "/health/ready", nil).Code)
		assert.Equal(t, http.StatusOK, httpSuite.MakeRequest(http.MethodGet, "/health/live", nil).Code)
	})

	t.Run("database down", func(t *testing.T) {
		httpSuite := newHealthRouter(errors.New("connection refused"))

		var response handlers.HealthResponse
		testutils.AssertJSONResponse(t, httpSuite.MakeRequest(http.MethodGet, "/health", nil), http.StatusServiceUnavailable, &response)
		assert.False(t, response.Success)
		assert.Equal(t, "unhealthy", response.Status)

		assert.Equal(t, http.StatusServiceUnavailable, httpSuite.MakeRequest(http.MethodGet, "/health/ready", nil).Code)
		assert.Equal(t, http.StatusOK, httpSuite.MakeRequest(http.MethodGet, "/health/live", nil).Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		httpSuite := newHealthRouter(nil)

		recorder := httpSuite.MakeRequest(http.MethodGet, "/nowhere", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "NotFound", "route not found")
	})
}
