// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across shopfront.
//
// # Key Functions
//
// Files:
//   - AtomicWriteFile: crash-safe replace of a file (temp, fsync, rename)
//
// Display:
//   - TruncateWidth, PadRight, StringWidth: column-aware string handling
//   - Thousands, Money, Percent, Ago: en-US number and time formatting
//
// # Usage
//
//	cell := util.PadRight(product.Name, 28)
//	total := util.Money(cart.Subtotal())
//	err := util.AtomicWriteFile(path, data, 0o600)
package util
