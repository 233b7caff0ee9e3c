// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrPromptAborted is returned when the user presses Ctrl+C at a prompt.
var ErrPromptAborted = errors.New("aborted")

// Prompter reads interactive input.
type Prompter interface {
	// Prompt reads a line with editing support.
	Prompt(label string) (string, error)
	// Password reads a line without echo.
	Password(label string) (string, error)
}

// terminalPrompter reads from the controlling terminal.
type terminalPrompter struct{}

func (terminalPrompter) Prompt(label string) (string, error) {
	if !IsTTY() {
		return "", &TTYRequiredError{Operation: "read " + strings.TrimSuffix(strings.ToLower(label), ": ")}
	}
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	s, err := line.Prompt(label)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrPromptAborted
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (terminalPrompter) Password(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", &TTYRequiredError{Operation: "read a password"}
	}
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
