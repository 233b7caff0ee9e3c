// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/app"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/kvstore"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/session"
)

// =============================================================================
// HELPERS
// =============================================================================

func newTestServer(t *testing.T, mutate ...func(*config.Config)) (*Server, *app.Services) {
	t.Helper()
	cfg := config.Default()
	cfg.Security.LoginDelay = config.Duration{}
	cfg.Security.SeedSampleLogs = false
	cfg.Server.JWTSecret = "test-secret"
	cfg.Server.RateLimit = 1000
	cfg.Server.RateBurst = 1000
	for _, m := range mutate {
		m(cfg)
	}

	svc, err := app.New(context.Background(), cfg, app.WithStore(kvstore.NewMemory()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	srv, err := New(svc, cfg.Server)
	require.NoError(t, err)
	return srv, svc
}

func do(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server, email, password string) string {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// =============================================================================
// PUBLIC ROUTES
// =============================================================================

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestMetrics_ExposeRequestCounterAndGauges(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, http.MethodGet, "/health", "", nil)

	rec := do(t, srv, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `shopfront_http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, body, "shopfront_security_active_alerts 0")
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLogin_AdminGetsToken(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "admin@amazon.com", "admin123")

	claims, err := srv.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@amazon.com", claims.Email)
}

func TestLogin_NonAdminForbidden(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/login", "", LoginRequest{Email: "user@amazon.com", Password: "user123"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	srv, svc := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/login", "", map[string]string{"email": "admin@amazon.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.Sessions.Attempts())
}

func TestLogin_LockoutAfterThreeFailures(t *testing.T) {
	srv, svc := newTestServer(t)

	for want := 2; want >= 0; want-- {
		rec := do(t, srv, http.MethodPost, "/api/login", "", LoginRequest{Email: "admin@amazon.com", Password: "nope"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.RemainingAttempts)
		if *resp.RemainingAttempts != want {
			t.Errorf("RemainingAttempts = %d, want %d", *resp.RemainingAttempts, want)
		}
	}

	rec := do(t, srv, http.MethodPost, "/api/login", "", LoginRequest{Email: "admin@amazon.com", Password: "admin123"})
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Contains(t, rec.Body.String(), "Account blocked")

	// The third failure was high risk and raised an alert.
	assert.NotEmpty(t, svc.Monitor.ActiveAlerts())
}

// =============================================================================
// ADMIN ROUTES
// =============================================================================

func TestAdminRoutes_RequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/security/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/security/stats", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := NewTokenIssuer("another-secret", time.Hour)
	require.NoError(t, err)
	forged, _, err := other.Issue(session.Identity{ID: "1", Email: "admin@amazon.com", Role: session.RoleAdmin})
	require.NoError(t, err)
	rec = do(t, srv, http.MethodGet, "/api/security/stats", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_UserTokenForbidden(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _, err := srv.tokens.Issue(session.Identity{ID: "2", Email: "user@amazon.com", Role: session.RoleUser})
	require.NoError(t, err)

	rec := do(t, srv, http.MethodGet, "/api/security/logs", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSecurityLogsAndStats(t *testing.T) {
	srv, svc := newTestServer(t)
	token := login(t, srv, "admin@amazon.com", "admin123")

	ctx := context.Background()
	svc.Monitor.AddLog(ctx, security.LogEntry{UserID: "a", Action: "Card testing", RiskLevel: security.RiskHigh})
	svc.Monitor.AddLog(ctx, security.LogEntry{UserID: "b", Action: "Browse", RiskLevel: security.RiskLow})

	rec := do(t, srv, http.MethodGet, "/api/security/logs?risk=high", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs struct {
		Logs  []security.LogEntry `json:"logs"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Equal(t, 1, logs.Count)
	assert.Equal(t, "Card testing", logs.Logs[0].Action)

	rec = do(t, srv, http.MethodGet, "/api/security/logs?limit=1", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	assert.Equal(t, "Browse", logs.Logs[0].Action)

	rec = do(t, srv, http.MethodGet, "/api/security/logs?limit=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/security/stats", token, nil)
	var stats security.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalAlerts)
	assert.Equal(t, 1, stats.HighRiskLogs)
}

func TestResolveAlert(t *testing.T) {
	srv, svc := newTestServer(t)
	token := login(t, srv, "admin@amazon.com", "admin123")

	a := svc.Monitor.AddAlert(context.Background(), security.Alert{Type: security.AlertWarning, Message: "Suspicious"})

	rec := do(t, srv, http.MethodPost, "/api/security/alerts/"+a.ID+"/resolve", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.Monitor.ActiveAlerts())

	rec = do(t, srv, http.MethodGet, "/api/security/alerts?all=true", token, nil)
	assert.Contains(t, rec.Body.String(), `"resolved":true`)

	rec = do(t, srv, http.MethodPost, "/api/security/alerts/missing/resolve", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	metrics := do(t, srv, http.MethodGet, "/metrics", "", nil).Body.String()
	assert.Contains(t, metrics, "shopfront_security_resolved_alerts 1")
}

func TestDashboardAndUsers(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "admin@amazon.com", "admin123")

	rec := do(t, srv, http.MethodGet, "/api/dashboard?period=quarter", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Len(t, dash.Overview, 4)
	assert.Equal(t, "Security Alerts", dash.Overview[3].Title)
	assert.Equal(t, "quarter", string(dash.Financial.Period))
	assert.Equal(t, 4, dash.Users.Total)

	rec = do(t, srv, http.MethodGet, "/api/dashboard?period=decade", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/users?status=blocked", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bob Johnson")
	assert.NotContains(t, rec.Body.String(), "Jane Smith")
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func TestRateLimit_Rejects(t *testing.T) {
	srv, _ := newTestServer(t, func(c *config.Config) {
		c.Server.RateLimit = 0.001
		c.Server.RateBurst = 2
	})

	codes := make([]int, 0, 3)
	for _i := 0; _i < 3; _i++ {
		codes = append(codes, do(t, srv, http.MethodPost, "/api/login", "", nil).Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)

	// /health is outside the limited group.
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", "", nil).Code)
}

func TestRateLimiter_SweepAndSetLimit(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	rl.SetLimit(1, 5)
	now = now.Add(2 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))

	assert.True(t, rl.Allow("b"))
	now = now.Add(time.Hour)
	if got := rl.Sweep(time.Minute); got != 0 {
		t.Errorf("Sweep() = %d, want 0", got)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery_ReturnsJSON500(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.engine.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := do(t, srv, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

// =============================================================================
// TOKENS
// =============================================================================

func TestTokenIssuer_Expiry(t *testing.T) {
	issuer, err := NewTokenIssuer("k", time.Minute)
	require.NoError(t, err)
	now := time.Now()
	issuer.now = func() time.Time { return now }

	token, expires, err := issuer.Issue(session.Identity{ID: "1", Role: session.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), expires)

	_, err = issuer.Parse(token)
	require.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RandomSecretWhenEmpty(t *testing.T) {
	a, err := NewTokenIssuer("", 0)
	require.NoError(t, err)
	b, err := NewTokenIssuer("", 0)
	require.NoError(t, err)

	token, _, err := a.Issue(session.Identity{ID: "1", Role: session.RoleAdmin})
	require.NoError(t, err)
	_, err = b.Parse(token)
	assert.Error(t, err)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/health", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestApplyConfig_UpdatesLimits(t *testing.T) {
	srv, svc := newTestServer(t)
	cfg := config.Default()
	cfg.Server.RateLimit = 1
	cfg.Server.RateBurst = 1
	cfg.Security.MaxLogs = 7

	srv.ApplyConfig(cfg)
	assert.Equal(t, 7, svc.Config.Security.MaxLogs)
	assert.True(t, srv.limiter.Allow("x"))
	assert.False(t, srv.limiter.Allow("x"))
}
