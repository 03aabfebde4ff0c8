// Package testutil provides shared test helpers for the storefront packages.
package testutil

import (
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
)

// NewProduct returns a priced VPS product with sensible defaults.
// Override individual fields with options.
func NewProduct(id string, opts ...func(*catalog.Product)) catalog.Product {
	p := catalog.Product{
		ID:          id,
		Kind:        catalog.KindVPS,
		Name:        "Plan " + id,
		Price:       10,
		Cores:       1,
		RAMGB:       1,
		StorageType: "SSD",
		Storage:     "25GB SSD",
		Brand:       "Generic",
		InStock:     true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithPrice sets the product price.
func WithPrice(v float64) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Price = v }
}

// WithOldPrice sets the pre-discount price.
func WithOldPrice(v float64) func(*catalog.Product) {
	return func(p *catalog.Product) { p.OldPrice = v }
}

// WithCores sets the core count.
func WithCores(n int) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Cores = n }
}

// WithRAM sets RAM in GB.
func WithRAM(gb int) func(*catalog.Product) {
	return func(p *catalog.Product) { p.RAMGB = gb }
}

// WithBrand sets the brand.
func WithBrand(b string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Brand = b }
}

// WithProcessor sets the processor model.
func WithProcessor(cpu string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Processor = cpu }
}

// WithCategory sets the plan category.
func WithCategory(c string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Category = c }
}

// WithStorageType sets the storage type.
func WithStorageType(t string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.StorageType = t }
}

// WithKind sets the product kind.
func WithKind(k catalog.Kind) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Kind = k }
}

// Unpriced marks the product as having no usable price.
func Unpriced() func(*catalog.Product) {
	return func(p *catalog.Product) { p.Price = catalog.UnavailablePrice }
}

// SampleDeals is the three-product list used across ranking and filter tests.
func SampleDeals() []catalog.Product {
	return []catalog.Product{
		NewProduct("1", WithPrice(50), WithCores(2), WithBrand("Intel")),
		NewProduct("2", WithPrice(40), WithCores(4), WithBrand("AMD")),
		NewProduct("3", WithPrice(30), WithCores(8), WithBrand("Intel")),
	}
}
