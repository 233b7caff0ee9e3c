// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "errors"

// Errors returned by Service. Use Message for the text shown in forms.
var (
	ErrBlocked            = errors.New("account blocked due to too many failed attempts")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists with this email")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password does not meet security requirements")
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrNotSignedIn        = errors.New("not signed in")
)

var formMessages = map[error]string{
	ErrBlocked:            "Account blocked due to too many failed attempts",
	ErrInvalidCredentials: "Invalid email or password",
	ErrUserExists:         "User already exists with this email",
	ErrPasswordMismatch:   "Passwords do not match",
	ErrWeakPassword:       "Password does not meet security requirements",
	ErrMissingFields:      "Please fill in all fields",
	ErrNotSignedIn:        "Not signed in",
}

// Message returns the sentence shown to the user for err. Wrapped auth
// errors map to their form text; anything else is returned as is.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for target, msg := range formMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}
