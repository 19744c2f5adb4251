package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"feedsvc/internal/auth"
	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/handler"
	"feedsvc/internal/observability"
)

func newTestEcho(t *testing.T, metrics *observability.Metrics) (*echo.Echo, *auth.JWTService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)
	tokens := auth.NewJWTService("router-secret", time.Hour)

	e := echo.New()
	Register(e, log, metrics, tokens,
		handler.NewUserHandler(nil, log),
		handler.NewAuthHandler(nil, log),
		handler.NewPostHandler(nil, log),
	)
	return e, tokens, logs
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	e, _, logs := newTestEcho(t, nil)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["uri"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), fields["request_id"])
}

func TestCORSPreflight(t *testing.T) {
	e, _, _ := newTestEcho(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set(echo.HeaderOrigin, "http://example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := serve(e, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "GET,POST", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, echo.HeaderContentType, rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
}

func TestMe(t *testing.T) {
	e, tokens, _ := newTestEcho(t, nil)
	valid, err := tokens.Issue("u-1", "alice")
	require.NoError(t, err)
	foreign, err := auth.NewJWTService("other-secret", time.Hour).Issue("u-1", "alice")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "Token valid"},
		{"missing header", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Unauthorized"},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized, "Unauthorized"},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := serve(e, req)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				apperrors.Response
				Data handler.SessionResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Message)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, handler.SessionResponse{Username: "alice", UserID: "u-1"}, body.Data)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics(observability.NewRegistry(), "feedsvc")
	e, _, _ := newTestEcho(t, metrics)

	serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/healthz",service="feedsvc",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestSwaggerRouteRegistered(t *testing.T) {
	e, _, _ := newTestEcho(t, nil)

	found := false
	for _, r := range e.Routes() {
		if r.Method == http.MethodGet && r.Path == "/swagger/*" {
			found = true
		}
	}
	assert.True(t, found)
}
