// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"fmt"

	"github.com/jeranaias/shopfront-tui/internal/cart"
	"github.com/jeranaias/shopfront-tui/internal/catalog"
	"github.com/jeranaias/shopfront-tui/internal/security"
)

// CurrentUser is the user id recorded for storefront activity.
const CurrentUser = "current_user"

// ViewProduct loads a product page and records the view.
func (s *Services) ViewProduct(ctx context.Context, id string) (catalog.Detail, error) {
	d, err := s.Catalog.Detail(id)
	if err != nil {
		return catalog.Detail{}, err
	}
	s.activity(ctx, "Product viewed", fmt.Sprintf("Product %s viewed", id))
	return d, nil
}

// AddToCart adds qty of a product and records it.
func (s *Services) AddToCart(ctx context.Context, id string, qty int) error {
	p, err := s.Catalog.Get(id)
	if err != nil {
		return err
	}
	if err := s.Cart.Add(cart.Item{ID: p.ID, Name: p.Name, Price: p.Price, Seller: p.Seller}, qty); err != nil {
		return err
	}
	s.activity(ctx, "Product added to cart", fmt.Sprintf("Product %s added to cart (qty: %d)", p.Name, qty))
	return nil
}

// ToggleFavorite flips a product's favorite state and records it.
func (s *Services) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if _, err := s.Catalog.Get(id); err != nil {
		return false, err
	}
	on := s.Favorites.Toggle(id)
	s.activity(ctx, "Product favorited", fmt.Sprintf("Product %s added/removed from favorites", id))
	return on, nil
}

func (s *Services) activity(ctx context.Context, action, details string) {
	s.Monitor.AddLog(ctx, security.LogEntry{
		UserID:    CurrentUser,
		Action:    action,
		IP:        s.Auth.ClientIP(),
		RiskLevel: security.RiskLow,
		Details:   details,
	})
}
