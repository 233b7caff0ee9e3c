// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/auth"
	"github.com/jeranaias/shopfront-tui/internal/dashboard"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/session"
)

// ============================================================================
// TYPES
// ============================================================================

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error             string `json:"error"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
}

func errorBody(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token for the admin routes.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}

// DashboardResponse is GET /api/dashboard.
type DashboardResponse struct {
	Overview   []dashboard.Metric   `json:"overview"`
	RecentLogs []security.LogEntry  `json:"recentLogs"`
	Analytics  dashboard.Analytics  `json:"analytics"`
	Financial  dashboard.Financial  `json:"financial"`
	Users      dashboard.UserCounts `json:"users"`
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": Version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"blocked": s.svc.Monitor.IsBlocked(),
	})
}

// handleLogin goes through the same lockout guard as the TUI, so failures
// here count toward the shared threshold.
func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(auth.Message(auth.ErrMissingFields)))
		return
	}

	id, err := s.svc.Auth.AttemptLogin(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrBlocked):
		s.refreshStats()
		c.JSON(http.StatusLocked, errorBody(auth.Message(err)))
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.refreshStats()
		remaining := s.svc.Auth.RemainingAttempts()
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: auth.Message(err), RemainingAttempts: &remaining})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody("login failed"))
		return
	}

	if id.Role != session.RoleAdmin {
		c.JSON(http.StatusForbidden, errorBody("admin role required"))
		return
	}

	token, expires, err := s.tokens.Issue(id)
	if err != nil {
		s.logger.Error("issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("could not issue token"))
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expires,
		Email:     id.Email,
		Role:      string(id.Role),
	})
}

func (s *Server) handleLogs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorBody("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	logs := s.svc.Monitor.Logs()
	if risk := c.Query("risk"); risk != "" {
		filtered := logs[:0:0]
		for _, l := range logs {
			if string(l.RiskLevel) == risk {
				filtered = append(filtered, l)
			}
		}
		logs = filtered
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

func (s *Server) handleAlerts(c *gin.Context) {
	alerts := s.svc.Monitor.ActiveAlerts()
	if c.Query("all") == "true" {
		alerts = s.svc.Monitor.Alerts()
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

func (s *Server) handleResolveAlert(c *gin.Context) {
	id := c.Param("id")
	err := s.svc.Monitor.ResolveAlert(c.Request.Context(), id)
	if errors.Is(err, security.ErrAlertNotFound) {
		c.JSON(http.StatusNotFound, errorBody(err.Error()))
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody("resolve failed"))
		return
	}
	s.refreshStats()
	c.JSON(http.StatusOK, gin.H{"id": id, "resolved": true})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Monitor.Stats())
}

func (s *Server) handleDashboard(c *gin.Context) {
	period := dashboard.PeriodMonth
	if raw := c.Query("period"); raw != "" {
		p, err := dashboard.ParsePeriod(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		period = p
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Overview:   dashboard.Overview(s.svc.Monitor.Stats()),
		RecentLogs: s.svc.Monitor.RecentLogs(dashboard.RecentActivityLimit),
		Analytics:  dashboard.DefaultAnalytics(),
		Financial:  dashboard.DefaultFinancial(period),
		Users:      s.svc.Users.Counts(),
	})
}

func (s *Server) handleUsers(c *gin.Context) {
	status := dashboard.UserStatus(c.DefaultQuery("status", string(dashboard.StatusAll)))
	users := s.svc.Users.Filter(c.Query("q"), status)
	c.JSON(http.StatusOK, gin.H{"users": users, "counts": s.svc.Users.Counts()})
}
