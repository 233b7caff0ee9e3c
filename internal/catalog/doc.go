// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the static product catalog, embedded as YAML.
//
// # Key Types
//
//   - Catalog: ordered products with lookup, search and category filter
//   - Product: a grid listing
//   - Detail: the product page, with features and specifications
//   - Favorites: the hearted-product set
package catalog
