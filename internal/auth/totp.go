// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP errors.
var (
	ErrNoEnrollment = errors.New("two-factor enrollment not started")
	ErrInvalidCode  = errors.New("invalid verification code")
)

// Enrollment is a pending or confirmed authenticator registration.
type Enrollment struct {
	Account string
	Secret  string
	URL     string
	Enabled bool
}

// TwoFactor manages authenticator-app enrollment for the profile screen.
// Enrollments live for the process only.
type TwoFactor struct {
	mu          sync.Mutex
	issuer      string
	now         func() time.Time
	enrollments map[string]*Enrollment
}

// NewTwoFactor returns an empty enrollment registry.
func NewTwoFactor(issuer string) *TwoFactor {
	return &TwoFactor{
		issuer:      issuer,
		now:         time.Now,
		enrollments: make(map[string]*Enrollment),
	}
}

// Begin generates a fresh secret for account, replacing any previous one.
func (t *TwoFactor) Begin(account string) (Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: account,
	})
	if err != nil {
		return Enrollment{}, err
	}

	e := &Enrollment{Account: account, Secret: key.Secret(), URL: key.URL()}
	t.mu.Lock()
	t.enrollments[strings.ToLower(account)] = e
	t.mu.Unlock()
	return *e, nil
}

// Confirm enables two-factor for account if code matches the pending secret.
func (t *TwoFactor) Confirm(account, code string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.enrollments[strings.ToLower(account)]
	if !ok {
		return ErrNoEnrollment
	}
	valid, err := totp.ValidateCustom(strings.TrimSpace(code), e.Secret, t.now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !valid {
		return ErrInvalidCode
	}
	e.Enabled = true
	return nil
}

// Enabled reports whether account has a confirmed enrollment.
func (t *TwoFactor) Enabled(account string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.enrollments[strings.ToLower(account)]
	return ok && e.Enabled
}

// Pending returns the enrollment for account, if any.
func (t *TwoFactor) Pending(account string) (Enrollment, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.enrollments[strings.ToLower(account)]
	if !ok {
		return Enrollment{}, false
	}
	return *e, true
}

// Disable removes any enrollment for account.
func (t *TwoFactor) Disable(account string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.enrollments, strings.ToLower(account))
}
