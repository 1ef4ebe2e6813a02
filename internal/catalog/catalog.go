// Package catalog supplies the immutable product list browsed when building
// a package. Admitted custom items are prepended so they can be re-added
// like any catalog product.
package catalog

import (
	"strings"

	"github.com/slfireworks/quotation/internal/images"
)

// SizeVariant is one orderable size of a product.
type SizeVariant struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// Product is a catalog entry. Catalog-provided products always carry at
// least one size variant.
type Product struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Image string        `json:"image"`
	Sizes []SizeVariant `json:"sizes"`
}

// ImageSource resolves the product image, falling back to a generated
// placeholder URI when none is set.
func (p Product) ImageSource() string {
	if raw := strings.TrimSpace(p.Image); raw != "" {
		return raw
	}
	return images.PlaceholderURI(p.Name)
}

// Provider exposes the visible product list: admitted custom entries first,
// then the fixed base catalog.
type Provider struct {
	base   []Product
	custom []Product
}

func NewProvider(base []Product) *Provider {
	copied := make([]Product, len(base))
	copy(copied, base)
	return &Provider{base: copied}
}

// Products returns the visible list. The returned slice is a copy; mutating
// it does not affect the provider.
func (p *Provider) Products() []Product {
	out := make([]Product, 0, len(p.custom)+len(p.base))
	out = append(out, p.custom...)
	out = append(out, p.base...)
	return out
}

// Prepend puts a custom product at the front of the visible list.
func (p *Provider) Prepend(product Product) {
	p.custom = append([]Product{product}, p.custom...)
}

// Find looks a product up by id across custom and base entries.
func (p *Provider) Find(id string) (Product, bool) {
	for _, product := range p.custom {
		if product.ID == id {
			return product, true
		}
	}
	for _, product := range p.base {
		if product.ID == id {
			return product, true
		}
	}
	return Product{}, false
}
