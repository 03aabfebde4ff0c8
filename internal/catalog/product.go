// Package catalog holds the storefront catalog core: the canonical Product
// shape, the normalizer that maps backend records onto it, the facet filter
// engine, the best-deal ranker and the carousel state machine.
//
// Everything here is pure. Nothing in this package touches the database or
// the network except the Source implementations in loader.go.
package catalog

import (
	"math"
	"strconv"
	"strings"
)

type Kind string

const (
	KindVPS       Kind = "vps"
	KindDedicated Kind = "dedicated"
)

func (k Kind) Valid() bool {
	return k == KindVPS || k == KindDedicated
}

// ParseKind accepts "vps" and "dedicated" in any case.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

// UnavailablePrice marks a product whose price is missing or unparseable.
// It sorts after every real price and never wins a cheapest comparison.
const UnavailablePrice float64 = 999999999

const DefaultStride = 390

// Product is the canonical shape every downstream component works on.
type Product struct {
	ID              string  `json:"id"`
	Kind            Kind    `json:"kind"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	OldPrice        float64 `json:"oldPrice,omitempty"`
	Cores           int     `json:"cores"`
	RAMGB           int     `json:"ramGB"`
	StorageGB       int     `json:"storageGB,omitempty"`
	StorageType     string  `json:"storageType"`
	Storage         string  `json:"storage"`
	Processor       string  `json:"processor,omitempty"`
	Brand           string  `json:"brand"`
	Category        string  `json:"category,omitempty"`
	Region          string  `json:"region,omitempty"`
	Bandwidth       string  `json:"bandwidth,omitempty"`
	ConnectionSpeed string  `json:"connectionSpeed,omitempty"`
	Location        string  `json:"location,omitempty"`
	Description     string  `json:"description,omitempty"`
	Featured        bool    `json:"featured"`
	Limited         bool    `json:"limited"`
	InStock         bool    `json:"inStock"`
}

// HasPrice reports whether the product carries a real, positive price.
func (p Product) HasPrice() bool {
	return p.Price > 0 && p.Price < UnavailablePrice
}

// PricePerCore is only meaningful when HasPrice is true.
func (p Product) PricePerCore() float64 {
	cores := p.Cores
	if cores < 1 {
		cores = 1
	}
	return p.Price / float64(cores)
}

// SavePercent returns the discount against the old price, rounded to a whole percent.
func (p Product) SavePercent() int {
	return SavePercent(p.Price, p.OldPrice)
}

func SavePercent(price, oldPrice float64) int {
	if oldPrice <= 0 || price <= 0 || price >= oldPrice || price >= UnavailablePrice {
		return 0
	}
	return int(math.Round((oldPrice - price) / oldPrice * 100))
}

// Record renders the product with canonical keys. Normalizing a Record
// yields the same Product again.
func (p Product) Record() map[string]any {
	rec := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"price":       p.Price,
		"cores":       p.Cores,
		"ramGB":       p.RAMGB,
		"storageType": p.StorageType,
		"storage":     p.Storage,
		"brand":       p.Brand,
		"featured":    p.Featured,
		"limited":     p.Limited,
		"inStock":     p.InStock,
	}
	optional := map[string]string{
		"processor":       p.Processor,
		"category":        p.Category,
		"region":          p.Region,
		"bandwidth":       p.Bandwidth,
		"connectionSpeed": p.ConnectionSpeed,
		"location":        p.Location,
		"description":     p.Description,
	}
	for k, v := range optional {
		if v != "" {
			rec[k] = v
		}
	}
	if p.OldPrice > 0 {
		rec["oldPrice"] = p.OldPrice
	}
	if p.StorageGB > 0 {
		rec["storageGB"] = p.StorageGB
	}
	return rec
}

// compareIDs orders numeric ids numerically and everything else lexically.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// lessByPrice is the single ordering used for every price sort: price
// ascending, then id.
func lessByPrice(a, b Product) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return compareIDs(a.ID, b.ID) < 0
}
