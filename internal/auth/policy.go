// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password signup accepts.
const MinPasswordLength = 8

// SpecialCharacters is the set that satisfies the special-character rule.
const SpecialCharacters = `!@#$%^&*(),.?":{}|<>`

// PasswordRule is one line of the signup checklist.
type PasswordRule struct {
	Label string
	Met   bool
}

// CheckPassword evaluates every rule, in display order.
func CheckPassword(pw string) []PasswordRule {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			digit = true
		case strings.ContainsRune(SpecialCharacters, r):
			special = true
		}
	}
	return []PasswordRule{
		{Label: "At least 8 characters", Met: utf8.RuneCountInString(pw) >= MinPasswordLength},
		{Label: "One uppercase letter", Met: upper},
		{Label: "One lowercase letter", Met: lower},
		{Label: "One number", Met: digit},
		{Label: "One special character", Met: special},
	}
}

// ValidPassword reports whether pw meets every rule.
func ValidPassword(pw string) bool {
	for _, r := range CheckPassword(pw) {
		if !r.Met {
			return false
		}
	}
	return true
}
