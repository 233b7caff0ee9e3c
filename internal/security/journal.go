// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jeranaias/shopfront-tui/internal/kvstore"
)

// Journal persists the log and alert lists between runs so the CLI, the
// TUI and the admin API see the same history.
type Journal interface {
	// Load returns the saved lists. found is false when nothing was ever
	// saved.
	Load(ctx context.Context) (logs []LogEntry, alerts []Alert, found bool, err error)
	Save(ctx context.Context, logs []LogEntry, alerts []Alert) error
}

// Journal keys.
const (
	KeySecurityLogs   = "securityLogs"
	KeySecurityAlerts = "securityAlerts"
)

// KVJournal stores both lists as JSON arrays in a kvstore.Store.
type KVJournal struct {
	store kvstore.Store
}

// NewKVJournal returns a journal over store.
func NewKVJournal(store kvstore.Store) *KVJournal {
	return &KVJournal{store: store}
}

// Load reads both keys. A corrupt value is treated like a missing one so
// a damaged journal never prevents startup.
func (j *KVJournal) Load(ctx context.Context) ([]LogEntry, []Alert, bool, error) {
	var logs []LogEntry
	var alerts []Alert

	logsFound, err := j.loadJSON(ctx, KeySecurityLogs, &logs)
	if err != nil {
		return nil, nil, false, err
	}
	alertsFound, err := j.loadJSON(ctx, KeySecurityAlerts, &alerts)
	if err != nil {
		return nil, nil, false, err
	}
	return logs, alerts, logsFound || alertsFound, nil
}

func (j *KVJournal) loadJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := j.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		_ = j.store.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// Save overwrites both keys.
func (j *KVJournal) Save(ctx context.Context, logs []LogEntry, alerts []Alert) error {
	if logs == nil {
		logs = []LogEntry{}
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	rawLogs, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encode logs: %w", err)
	}
	rawAlerts, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("encode alerts: %w", err)
	}
	if err := j.store.Set(ctx, KeySecurityLogs, string(rawLogs)); err != nil {
		return err
	}
	return j.store.Set(ctx, KeySecurityAlerts, string(rawAlerts))
}
