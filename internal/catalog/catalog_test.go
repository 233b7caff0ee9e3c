// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, 6, c.Len())

	p, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Bluetooth Headphones", p.Name)
	assert.Equal(t, 79.99, p.Price)
	assert.Equal(t, 99.99, p.OriginalPrice)
	assert.Equal(t, "Best Seller", p.Badge)
	assert.Equal(t, 20, p.Discount())

	p, err = c.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Amazon's Choice", p.Badge)
	assert.Zero(t, p.OriginalPrice)
	assert.Zero(t, p.Discount())
}

func TestGet_Unknown(t *testing.T) {
	_, err := Default().Get("99")
	require.ErrorIs(t, err, ErrProductNotFound)

	_, err = Default().Detail("99")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDetail(t *testing.T) {
	d, err := Default().Detail("1")
	require.NoError(t, err)

	assert.Equal(t, "TechStore Official", d.Seller)
	assert.Equal(t, 47, d.InStock)
	assert.Len(t, d.Features, 7)
	require.Len(t, d.Specifications, 8)
	assert.Equal(t, Spec{Name: "Driver Size", Value: "40mm"}, d.Specifications[0])
	assert.Equal(t, "Bluetooth 5.0, 3.5mm jack", d.Specifications[6].Value)
	assert.True(t, len(d.Description) > 0 && d.Description[len(d.Description)-1] == '.')

	md := d.Markdown()
	assert.Contains(t, md, "- Active Noise Cancellation (ANC)")
	assert.Contains(t, md, "| Weight | 250g |")

	// Fallback detail for products without their own page data.
	d, err = Default().Detail("6")
	require.NoError(t, err)
	assert.Equal(t, "YogaPlus", d.Seller)
	assert.Equal(t, DefaultInStock, d.InStock)
	assert.Contains(t, d.Description, "Premium Yoga Mat")
}

func TestSearch(t *testing.T) {
	c := Default()
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3", "4", "5", "6"}},
		{"wireless", []string{"1", "5"}},
		{"FITNESS", []string{"4", "6"}},
		{"coffeelovers", []string{"3"}},
		{"tv", nil},
	}

	for _, tt := range tests {
		var got []string
		for _, p := range c.Search(tt.query) {
			got = append(got, p.ID)
		}
		assert.Equal(t, tt.want, got, "Search(%q)", tt.query)
	}
}

func TestCategories(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"Electronics", "Food & Beverages", "Sports & Fitness"}, c.Categories())
	assert.Len(t, c.InCategory("electronics"), 3)
	assert.Len(t, c.InCategory(AllCategories), 6)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":    "products: [",
		"no id":     "products:\n  - name: X\n",
		"duplicate": "products:\n  - {id: a, name: A}\n  - {id: a, name: B}\n",
		"negative":  "products:\n  - {id: a, name: A, price: -1}\n",
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%s) error = nil, want error", name)
		}
	}
}

func TestFavorites(t *testing.T) {
	f := NewFavorites()
	assert.True(t, f.Toggle("3"))
	assert.True(t, f.Toggle("1"))
	assert.True(t, f.Has("3"))
	assert.Equal(t, []string{"1", "3"}, f.IDs())
	assert.False(t, f.Toggle("3"))
	assert.False(t, f.Has("3"))
}
