// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kvstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a flat string-to-string store. Writes are last-write-wins;
// there are no transactions across keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and parameterises a backend.
type Options struct {
	Backend string

	// Dir holds shopfront.db (sqlite) or session.json (file).
	Dir string

	RedisAddr   string
	RedisPrefix string
}

// Open returns the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(opts.Backend) {
	case BackendSQLite, "":
		store, err = OpenSQLite(ctx, filepath.Join(opts.Dir, "shopfront.db"))
	case BackendFile:
		store, err = OpenFile(filepath.Join(opts.Dir, "session.json"))
	case BackendMemory:
		store = NewMemory()
	case BackendRedis:
		store, err = OpenRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
	default:
		err = fmt.Errorf("kvstore: unknown backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
