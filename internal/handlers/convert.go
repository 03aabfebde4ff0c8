package handlers

import (
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
)

// toProduct runs a stored row through the normalizer so orders and listings
// see the same canonical product.
func toProduct(kind catalog.Kind, row any) catalog.Product {
	body, err := catalog.AsBody([]any{row})
	if err != nil {
		return catalog.Product{Kind: kind, Price: catalog.UnavailablePrice}
	}
	products := catalog.Normalize(body, kind)
	if len(products) == 0 {
		return catalog.Product{Kind: kind, Price: catalog.UnavailablePrice}
	}
	return products[0]
}

func priceOrZero(p catalog.Product) float64 {
	if !p.HasPrice() {
		return 0
	}
	return p.Price
}

// vpsFromProduct maps an imported feed entry onto a VPS row.
func vpsFromProduct(p catalog.Product, into *models.VPS) {
	into.Name = p.Name
	into.Region = p.Region
	if into.Region == "" {
		into.Region = p.Location
	}
	into.Cores = p.Cores
	into.RAMGB = p.RAMGB
	into.StorageGB = p.StorageGB
	into.StorageType = p.StorageType
	into.ConnectionSpeed = p.ConnectionSpeed
	into.Price = priceOrZero(p)
	into.OldPrice = p.OldPrice
	into.Category = p.Category
	into.Featured = p.Featured
	into.Limited = p.Limited
	into.InStock = p.InStock && p.HasPrice()
}

// dedicatedFromProduct maps an imported feed entry onto a dedicated row.
func dedicatedFromProduct(p catalog.Product, into *models.Dedicated) {
	into.Name = p.Name
	into.CPUModel = p.Processor
	into.Cores = p.Cores
	into.RAMGB = p.RAMGB
	into.Storage = p.Storage
	into.StorageType = p.StorageType
	into.Price = priceOrZero(p)
	into.OldPrice = p.OldPrice
	into.Brand = p.Brand
	into.Bandwidth = p.Bandwidth
	into.Speed = p.ConnectionSpeed
	into.Location = p.Location
	into.Featured = p.Featured
	into.Limited = p.Limited
	into.InStock = p.InStock && p.HasPrice()
	into.Description = p.Description
}
