// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		pw   string
		want []bool
	}{
		{"", []bool{false, false, false, false, false}},
		{"abcdefgh", []bool{true, false, true, false, false}},
		{"ABCdef12", []bool{true, true, true, true, false}},
		{"Abcdef1!", []bool{true, true, true, true, true}},
		{"Ab1!", []bool{false, true, true, true, true}},
	}

	for _, tt := range tests {
		rules := CheckPassword(tt.pw)
		require.Len(t, rules, 5)
		for i, r := range rules {
			if r.Met != tt.want[i] {
				t.Errorf("CheckPassword(%q)[%s] = %v, want %v", tt.pw, r.Label, r.Met, tt.want[i])
			}
		}
		all := true
		for _, w := range tt.want {
			all = all && w
		}
		if got := ValidPassword(tt.pw); got != all {
			t.Errorf("ValidPassword(%q) = %v, want %v", tt.pw, got, all)
		}
	}
}

func TestDirectory(t *testing.T) {
	d := NewDirectory()

	assert.Len(t, d.Accounts(), 2)
	assert.True(t, d.Exists("admin@amazon.com"))
	assert.False(t, d.Exists("ghost@amazon.com"))

	_, ok := d.Verify("admin@amazon.com", "user123")
	assert.False(t, ok, "password of another account must not match")

	id, ok := d.Verify("admin@amazon.com", "admin123")
	require.True(t, ok)
	assert.True(t, id.IsAdmin())
}

func TestTwoFactor(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tf := NewTwoFactor("Shopfront")
	tf.now = func() time.Time { return now }

	require.ErrorIs(t, tf.Confirm("user@amazon.com", "000000"), ErrNoEnrollment)

	e, err := tf.Begin("user@amazon.com")
	require.NoError(t, err)
	assert.NotEmpty(t, e.Secret)
	assert.Contains(t, e.URL, "otpauth://totp/")
	assert.False(t, tf.Enabled("user@amazon.com"))

	require.ErrorIs(t, tf.Confirm("user@amazon.com", "not-a-code"), ErrInvalidCode)

	code, err := totp.GenerateCode(e.Secret, now)
	require.NoError(t, err)
	require.NoError(t, tf.Confirm("USER@amazon.com", code))
	assert.True(t, tf.Enabled("user@amazon.com"))

	tf.Disable("user@amazon.com")
	assert.False(t, tf.Enabled("user@amazon.com"))
	_, ok := tf.Pending("user@amazon.com")
	assert.False(t, ok)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidCredentials, "Invalid email or password"},
		{fmt.Errorf("login: %w", ErrBlocked), "Account blocked due to too many failed attempts"},
		{ErrPasswordMismatch, "Passwords do not match"},
		{errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
	for target := range formMessages {
		assert.Equal(t, strings.ToLower(target.Error()[:1]), target.Error()[:1], "error strings start lower-case")
	}
}
