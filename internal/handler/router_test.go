//go:build unit

package handler_test

import (
	"net/http"
	"testing"

	"cinema-seat-hold/internal/handler"
	"cinema-seat-hold/internal/handler/api"
	"cinema-seat-hold/internal/handler/middleware"
	"cinema-seat-hold/internal/pkg/config"
	"cinema-seat-hold/internal/usecase/lifecycle"
	"cinema-seat-hold/tests/common/httptest"
	lifecyclemock "cinema-seat-hold/tests/mock/lifecycle"
	queriesmock "cinema-seat-hold/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*gin.Engine, *lifecyclemock.MockHoldService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	holds := lifecyclemock.NewMockHoldService(ctrl)
	screenings := queriesmock.NewMockScreeningQueries(ctrl)

	cfg := config.NewTestConfig()
	engine := gin.New()
	handler.NewRouter(engine, cfg, middleware.NewLogger(cfg.Log),
		api.NewHoldHandler(holds), api.NewScreeningHandler(screenings), holds)
	return engine, holds
}

func TestHealth(t *testing.T) {
	router, holds := newRouter(t)
	holds.EXPECT().Stats().Return(lifecycle.Stats{Tracked: 5, Active: 2})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil)

	var body map[string]any
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 5, body["tracked_holds"])
	assert.EqualValues(t, 2, body["active_holds"])
}

func TestRequestID(t *testing.T) {
	router, holds := newRouter(t)
	holds.EXPECT().Stats().Return(lifecycle.Stats{}).Times(2)

	t.Run("caller supplied id is echoed", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/health", nil,
			map[string]string{middleware.RequestIDHeader: "req-42"})
		assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("missing id is generated", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil)
		assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)
	})
}

func TestRoutes(t *testing.T) {
	router, _ := newRouter(t)

	got := map[string]bool{}
	for _, r := range router.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /api/screenings",
		"GET /api/screenings/:id/seats",
		"POST /api/screenings/:id/holds",
		"GET /api/holds/:code",
		"POST /api/holds/:code/confirm",
		"POST /api/holds/:code/cancel",
	} {
		require.True(t, got[want], "route %s is not registered", want)
	}
	assert.Len(t, got, 7, "no other routes outside debug mode")
}

func TestUnregisteredMethodIsNotRouted(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.PerformRequest(t, router, http.MethodDelete, "/api/holds/ABCDEFGH23", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoveryReturnsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	engine.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := httptest.PerformRequest(t, engine, http.MethodGet, "/panic", nil)
	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
}
