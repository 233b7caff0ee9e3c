// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"strings"
)

// Markdown renders the detail page body (description, features and the
// specifications table) for a markdown renderer.
func (d Detail) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", d.Name)
	if d.Description != "" {
		b.WriteString(d.Description)
		b.WriteString("\n\n")
	}

	if len(d.Features) > 0 {
		b.WriteString("### Key Features\n\n")
		for _, f := range d.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	if len(d.Specifications) > 0 {
		b.WriteString("### Specifications\n\n| | |\n|---|---|\n")
		for _, s := range d.Specifications {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(s.Name), escapeCell(s.Value))
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
