// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jeranaias/shopfront-tui/internal/security"
)

// Metrics are the collectors exposed on /metrics. Each Server owns its
// own registry so tests can build several.
type Metrics struct {
	Registry *prometheus.Registry

	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec

	ActiveAlerts   prometheus.Gauge
	ResolvedAlerts prometheus.Gauge
	HighRiskLogs   prometheus.Gauge
	BlockedUsers   prometheus.Gauge
	LoginAttempts  prometheus.Gauge
	RateClients    prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfront_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopfront_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		ActiveAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shopfront_security_active_alerts",
			Help: "Unresolved security alerts",
		}),
		ResolvedAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shopfront_security_resolved_alerts",
			Help: "Resolved security alerts still in the alert list",
		}),
		HighRiskLogs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shopfront_security_high_risk_logs",
			Help: "High-risk entries in the security log",
		}),
		BlockedUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shopfront_security_blocked_users",
			Help: "1 when the local session is blocked",
		}),
		LoginAttempts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shopfront_login_failed_attempts",
			Help: "Consecutive failed login attempts",
		}),
		RateClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shopfront_rate_limited_clients",
			Help: "Clients tracked by the rate limiter",
		}),
	}
	m.Registry.MustRegister(
		m.Requests, m.Duration,
		m.ActiveAlerts, m.ResolvedAlerts, m.HighRiskLogs, m.BlockedUsers,
		m.LoginAttempts, m.RateClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe copies a stats snapshot into the gauges.
func (m *Metrics) Observe(s security.Stats, attempts int) {
	m.ActiveAlerts.Set(float64(s.TotalAlerts))
	m.ResolvedAlerts.Set(float64(s.ResolvedAlerts))
	m.HighRiskLogs.Set(float64(s.HighRiskLogs))
	m.BlockedUsers.Set(float64(s.BlockedUsers))
	m.LoginAttempts.Set(float64(attempts))
}
