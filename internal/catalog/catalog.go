// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrProductNotFound is returned for an unknown product id.
var ErrProductNotFound = errors.New("product not found")

// DefaultInStock is the stock shown for products without detail data.
const DefaultInStock = 47

// =============================================================================
// TYPES
// =============================================================================

// Product is a catalog listing as shown on the home grid.
type Product struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Price         float64 `yaml:"price" json:"price"`
	OriginalPrice float64 `yaml:"original_price,omitempty" json:"originalPrice,omitempty"`
	Rating        float64 `yaml:"rating" json:"rating"`
	Reviews       int     `yaml:"reviews" json:"reviews"`
	Seller        string  `yaml:"seller" json:"seller"`
	Badge         string  `yaml:"badge,omitempty" json:"badge,omitempty"`
	Category      string  `yaml:"category" json:"category"`
	Image         string  `yaml:"image,omitempty" json:"image,omitempty"`

	detail *detailData
}

// Discount returns the whole-percent saving against OriginalPrice, or 0.
func (p Product) Discount() int {
	if p.OriginalPrice <= p.Price || p.OriginalPrice == 0 {
		return 0
	}
	return int((p.OriginalPrice - p.Price) / p.OriginalPrice * 100)
}

// Spec is one row of the specifications table.
type Spec struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Detail is the full product page.
type Detail struct {
	Product
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	Specifications []Spec   `json:"specifications"`
	InStock        int      `json:"inStock"`
}

type detailData struct {
	Name           string   `yaml:"name"`
	Seller         string   `yaml:"seller"`
	InStock        int      `yaml:"in_stock"`
	Description    string   `yaml:"description"`
	Features       []string `yaml:"features"`
	Specifications []Spec   `yaml:"specifications"`
}

type productRecord struct {
	Product `yaml:",inline"`
	Detail  *detailData `yaml:"detail,omitempty"`
}

type document struct {
	Products []productRecord `yaml:"products"`
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data: %v", err))
	}
	return c
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(doc.Products))}
	for _, rec := range doc.Products {
		p := rec.Product
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("parse catalog: product %q missing id or name", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate product id %q", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("parse catalog: product %s has negative price", p.ID)
		}
		p.detail = rec.Detail
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// All returns every product in catalog order.
func (c *Catalog) All() []Product {
	return append([]Product(nil), c.products...)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Get returns a product by id.
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// Detail returns the product page for id. Products without their own
// detail data get a description derived from the listing.
func (c *Catalog) Detail(id string) (Detail, error) {
	p, err := c.Get(id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Product: p, InStock: DefaultInStock}
	if p.detail == nil {
		d.Description = fmt.Sprintf("%s from %s, rated %.1f by %d shoppers.", p.Name, p.Seller, p.Rating, p.Reviews)
		return d, nil
	}

	dd := p.detail
	if dd.Name != "" {
		d.Name = dd.Name
	}
	if dd.Seller != "" {
		d.Seller = dd.Seller
	}
	if dd.InStock > 0 {
		d.InStock = dd.InStock
	}
	d.Description = strings.TrimSpace(dd.Description)
	d.Features = append([]string(nil), dd.Features...)
	d.Specifications = append([]Spec(nil), dd.Specifications...)
	return d, nil
}

// Search returns products whose name, category or seller contains query,
// ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Seller), q) {
			out = append(out, p)
		}
	}
	return out
}

// InCategory returns the products in category. "" or "All" returns all.
func (c *Catalog) InCategory(category string) []Product {
	if category == "" || category == AllCategories {
		return c.All()
	}
	var out []Product
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// AllCategories is the pseudo-category that disables filtering.
const AllCategories = "All"

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}
