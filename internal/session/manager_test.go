// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/kvstore"
)

func newTestManager(t *testing.T) (*Manager, *kvstore.Memory) {
	t.Helper()
	store := kvstore.NewMemory()
	m := NewManager(store)
	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	return m, store
}

// =============================================================================
// RESTORE TESTS
// =============================================================================

func TestRestore_Empty(t *testing.T) {
	m, _ := newTestManager(t)

	if _, ok := m.Identity(); ok {
		t.Error("Identity() ok = true on empty store")
	}
	if m.Attempts() != 0 {
		t.Errorf("Attempts() = %d, want 0", m.Attempts())
	}
	if m.Blocked() {
		t.Error("Blocked() = true on empty store")
	}
}

func TestRestore_ReadsPersistedState(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	_ = store.Set(ctx, KeyUser, `{"id":"1","email":"admin@amazon.com","name":"Admin User","role":"admin","createdAt":"2024-01-01T00:00:00Z"}`)
	_ = store.Set(ctx, KeyLoginAttempts, "2")
	_ = store.Set(ctx, KeyBlocked, "true")

	m := NewManager(store)
	if err := m.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	id, ok := m.Identity()
	if !ok {
		t.Fatal("Identity() ok = false")
	}
	if id.Email != "admin@amazon.com" || !id.IsAdmin() {
		t.Errorf("Identity() = %+v", id)
	}
	if m.Attempts() != 2 {
		t.Errorf("Attempts() = %d, want 2", m.Attempts())
	}
	if !m.Blocked() {
		t.Error("Blocked() = false, want true")
	}
}

func TestRestore_MalformedUserIsCleared(t *testing.T) {
	ctx := context.Background()
	tests := []string{
		"{not json",
		`"a string"`,
		`{"id":"1","email":"x@y.z","role":"superuser"}`,
		`{}`,
	}

	for _, raw := range tests {
		store := kvstore.NewMemory()
		_ = store.Set(ctx, KeyUser, raw)

		m := NewManager(store)
		if err := m.Restore(ctx); err != nil {
			t.Fatalf("Restore(%q) error = %v", raw, err)
		}
		if _, ok := m.Identity(); ok {
			t.Errorf("Restore(%q): identity should be absent", raw)
		}
		if _, err := store.Get(ctx, KeyUser); !errors.Is(err, kvstore.ErrNotFound) {
			t.Errorf("Restore(%q): key %q should be deleted, got err %v", raw, KeyUser, err)
		}
	}
}

func TestRestore_MalformedCounterReadsZero(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	_ = store.Set(ctx, KeyLoginAttempts, "many")

	m := NewManager(store)
	if err := m.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	if m.Attempts() != 0 {
		t.Errorf("Attempts() = %d, want 0", m.Attempts())
	}
}

func TestRestore_BlockedOnlyForLiteralTrue(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	_ = store.Set(ctx, KeyBlocked, "yes")

	m := NewManager(store)
	_ = m.Restore(ctx)
	if m.Blocked() {
		t.Error(`Blocked() = true for "yes", want false`)
	}
}

// =============================================================================
// MUTATION TESTS
// =============================================================================

func TestSetIdentity_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	want := Identity{ID: "2", Email: "user@amazon.com", Name: "John Doe", Role: RoleUser, CreatedAt: now, LastLogin: now}
	if err := m.SetIdentity(ctx, want); err != nil {
		t.Fatalf("SetIdentity() error = %v", err)
	}

	again := NewManager(store)
	if err := again.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	got, ok := again.Identity()
	if !ok {
		t.Fatal("restored identity missing")
	}
	if got.ID != want.ID || got.Email != want.Email || got.Role != want.Role || !got.LastLogin.Equal(now) {
		t.Errorf("restored %+v, want %+v", got, want)
	}
}

func TestClearIdentity_KeepsCounter(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	_ = m.SetIdentity(ctx, Identity{ID: "1", Email: "a@b.c", Role: RoleUser})
	_, _ = m.IncrementAttempts(ctx)

	if err := m.ClearIdentity(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Identity(); ok {
		t.Error("identity still present after ClearIdentity")
	}
	if _, err := store.Get(ctx, KeyUser); !errors.Is(err, kvstore.ErrNotFound) {
		t.Errorf("user key still stored: %v", err)
	}
	if m.Attempts() != 1 {
		t.Errorf("Attempts() = %d, want 1", m.Attempts())
	}
}

func TestAttempts_IncrementAndReset(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	for want := 1; want <= 3; want++ {
		got, err := m.IncrementAttempts(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("IncrementAttempts() = %d, want %d", got, want)
		}
	}
	if v, _ := store.Get(ctx, KeyLoginAttempts); v != "3" {
		t.Errorf("stored counter = %q, want \"3\"", v)
	}

	if err := m.ResetAttempts(ctx); err != nil {
		t.Fatal(err)
	}
	if m.Attempts() != 0 {
		t.Errorf("Attempts() after reset = %d", m.Attempts())
	}
	if _, err := store.Get(ctx, KeyLoginAttempts); !errors.Is(err, kvstore.ErrNotFound) {
		t.Errorf("counter key should be removed, got %v", err)
	}
}

func TestSetBlocked(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	_ = m.SetBlocked(ctx, true)
	if v, _ := store.Get(ctx, KeyBlocked); v != "true" {
		t.Errorf("stored flag = %q, want \"true\"", v)
	}

	_ = m.SetBlocked(ctx, false)
	if _, err := store.Get(ctx, KeyBlocked); !errors.Is(err, kvstore.ErrNotFound) {
		t.Errorf("flag should be removed on unblock, got %v", err)
	}
	if m.Blocked() {
		t.Error("Blocked() = true after unblock")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	_ = m.SetIdentity(ctx, Identity{ID: "1", Email: "a@b.c", Name: "A", Role: RoleUser})

	snap := m.Snapshot()
	snap.Identity.Name = "changed"

	id, _ := m.Identity()
	if id.Name != "A" {
		t.Errorf("Snapshot leaked internal state: name = %q", id.Name)
	}
}
