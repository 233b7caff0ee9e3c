// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cart

import (
	"errors"
	"fmt"
	"sync"
)

// MaxQuantity caps a single line.
const MaxQuantity = 99

// ErrInvalidQuantity is returned for quantities outside 1..MaxQuantity.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Item is what gets added: enough of the product to show a cart line.
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Seller string  `json:"seller"`
}

// Line is an item with its quantity.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Total is Price times Quantity.
func (l Line) Total() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart is the in-memory shopping cart. Lines keep insertion order.
type Cart struct {
	mu    sync.RWMutex
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts qty of item in the cart, merging with an existing line.
// The merged quantity is clamped to MaxQuantity.
func (c *Cart) Add(item Item, qty int) error {
	if qty < 1 || qty > MaxQuantity {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity = min(c.lines[i].Quantity+qty, MaxQuantity)
			return nil
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: qty})
	return nil
}

// Remove drops the line for id. Removing an absent id is a no-op.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of id. Zero removes the line.
// It reports whether the line existed.
func (c *Cart) SetQuantity(id string, qty int) (bool, error) {
	if qty < 0 || qty > MaxQuantity {
		return false, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if qty == 0 {
		found := c.Has(id)
		c.Remove(id)
		return found, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = qty
			return true, nil
		}
	}
	return false, nil
}

// Has reports whether id has a line.
func (c *Cart) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.lines {
		if l.ID == id {
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy of the lines.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Line(nil), c.lines...)
}

// TotalItems is the sum of quantities, shown as the header badge.
func (c *Cart) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of line totals.
func (c *Cart) Subtotal() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var sum float64
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}
