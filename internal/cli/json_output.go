// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for --json.
//
// Every command prints the same envelope so scripts can check "success"
// before reading "data".

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
)

// JSONResponse is the envelope for all --json output.
type JSONResponse struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data"`
	Error     *string `json:"error"`
	Timestamp string  `json:"timestamp"`
	Command   string  `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates an error response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{
		Error:     &msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes r as indented JSON, syntax highlighted when colors are
// enabled.
func (r *JSONResponse) Write(w io.Writer) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return err
	}
	return writeHighlighted(w, buf.String(), "json")
}

// writeHighlighted prints src in lang through chroma, or plain when
// colors are off.
func writeHighlighted(w io.Writer, src, lang string) error {
	if !ColorsEnabled() {
		_, err := io.WriteString(w, src)
		return err
	}
	if err := quick.Highlight(w, src, lang, "terminal256", "monokai"); err != nil {
		_, err = io.WriteString(w, src)
		return err
	}
	return nil
}
