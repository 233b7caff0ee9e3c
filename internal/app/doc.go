// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app builds and owns the shared services: store, session,
// security monitor, auth, catalog, cart and managed users.
//
// # Usage
//
//	svc, err := app.New(ctx, cfg, app.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
package app
