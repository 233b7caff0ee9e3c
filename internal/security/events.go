// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package security

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// RISK LEVELS AND ALERT TYPES
// =============================================================================

// RiskLevel classifies a logged action.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ParseRiskLevel accepts low, medium or high in any case.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch r := RiskLevel(strings.ToLower(s)); r {
	case RiskLow, RiskMedium, RiskHigh:
		return r, nil
	default:
		return "", fmt.Errorf("unknown risk level %q", s)
	}
}

func (r RiskLevel) valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// AlertType is the display severity of an alert.
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertDanger  AlertType = "danger"
)

func (t AlertType) valid() bool {
	return t == AlertInfo || t == AlertWarning || t == AlertDanger
}

// =============================================================================
// RECORDS
// =============================================================================

// LogEntry is one recorded user action.
type LogEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Details   string    `json:"details"`
}

// Alert is a resolvable notification shown to admins. Resolving flips
// Resolved; alerts are only ever removed by the size cap.
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId,omitempty"`
	Resolved  bool      `json:"resolved"`
}

// Stats is derived from the current lists on every call.
type Stats struct {
	// TotalAlerts counts unresolved alerts.
	TotalAlerts    int `json:"totalAlerts"`
	ResolvedAlerts int `json:"resolvedAlerts"`
	HighRiskLogs   int `json:"highRiskLogs"`
	// BlockedUsers is 1 when the local session is blocked, else 0.
	BlockedUsers int `json:"blockedUsers"`
}

// =============================================================================
// MESSAGE TEMPLATES
// =============================================================================

// HighRiskMessage is the message of the alert raised for a high-risk log.
func HighRiskMessage(action string) string {
	return "High-risk activity detected: " + action
}

// BlockedMessage is the message of the alert raised when a user is blocked.
func BlockedMessage(userID string) string {
	return fmt.Sprintf("User %s has been blocked due to security violations", userID)
}
