// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kvstore provides the local key-value persistence behind the
// session store.
//
// Values are opaque strings. Backends:
//
//   - SQLiteStore: default, ~/.shopfront/shopfront.db (modernc.org/sqlite)
//   - File: a single JSON object rewritten atomically
//   - RedisStore: shared across terminals, keys under a prefix
//   - Memory: tests and throwaway sessions
//
// # Usage
//
//	store, err := kvstore.Open(ctx, kvstore.Options{Backend: "sqlite", Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	v, err := store.Get(ctx, "loginAttempts")
//	if errors.Is(err, kvstore.ErrNotFound) {
//	    v = "0"
//	}
package kvstore
