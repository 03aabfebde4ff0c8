package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/logger"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/validation"
)

// CatalogNotifier is told whenever a catalog changes so live showroom
// sessions can reload.
type CatalogNotifier interface {
	CatalogUpdated(ctx context.Context, kind catalog.Kind)
}

// AdminCatalogHandler manages VPS plans and dedicated servers.
type AdminCatalogHandler struct {
	Store    *store.Store
	Notifier CatalogNotifier
	// Upstreams are supplier feeds the import endpoint pulls from.
	Upstreams map[catalog.Kind]catalog.Source
	Loader    *catalog.Loader
}

// ==== REQUEST STRUCTS ====

type VPSReq struct {
	Name            string  `json:"name" validate:"max=120,no_xss"`
	Region          string  `json:"region" validate:"required,max=80,no_xss"`
	Cores           int     `json:"cores" validate:"required,gte=1,lte=512"`
	RAMGB           int     `json:"ramGB" validate:"required,gte=1"`
	StorageGB       int     `json:"storageGB" validate:"required,gte=1"`
	StorageType     string  `json:"storageType" validate:"omitempty,oneof=SSD NVMe HDD"`
	ConnectionSpeed string  `json:"connectionSpeed" validate:"max=40"`
	Price           float64 `json:"price" validate:"gt=0"`
	OldPrice        float64 `json:"oldPrice" validate:"gte=0"`
	Category        string  `json:"category" validate:"omitempty,oneof=LowSpace HighSpace"`
	Featured        bool    `json:"featured"`
	Limited         bool    `json:"limited"`
	InStock         *bool   `json:"inStock"`
}

func (r VPSReq) apply(v *models.VPS) {
	v.Name = strings.TrimSpace(r.Name)
	v.Region = strings.TrimSpace(r.Region)
	v.Cores = r.Cores
	v.RAMGB = r.RAMGB
	v.StorageGB = r.StorageGB
	v.StorageType = r.StorageType
	if v.StorageType == "" {
		v.StorageType = "SSD"
	}
	v.ConnectionSpeed = r.ConnectionSpeed
	v.Price = r.Price
	v.OldPrice = r.OldPrice
	v.Category = r.Category
	v.Featured = r.Featured
	v.Limited = r.Limited
	v.InStock = r.InStock == nil || *r.InStock
}

type DedicatedReq struct {
	Name            string  `json:"name" validate:"max=120,no_xss"`
	CPUModel        string  `json:"cpuModel" validate:"required,max=120,no_xss"`
	Cores           int     `json:"cores" validate:"required,gte=1,lte=512"`
	RAMGB           int     `json:"ramGB" validate:"required,gte=1"`
	Storage         string  `json:"storage" validate:"max=80"`
	StorageType     string  `json:"storageType" validate:"omitempty,oneof=SSD NVMe HDD"`
	ConnectionSpeed string  `json:"connectionSpeed" validate:"max=40"`
	Price           float64 `json:"price" validate:"gt=0"`
	OldPrice        float64 `json:"oldPrice" validate:"gte=0"`
	Brand           string  `json:"brand" validate:"max=60"`
	Bandwidth       string  `json:"bandwidth" validate:"max=60"`
	Location        string  `json:"location" validate:"max=80"`
	Description     string  `json:"description" validate:"max=2000,no_xss"`
	Featured        bool    `json:"featured"`
	Limited         bool    `json:"limited"`
	InStock         *bool   `json:"inStock"`
}

func (r DedicatedReq) apply(d *models.Dedicated) {
	d.Name = strings.TrimSpace(r.Name)
	d.CPUModel = strings.TrimSpace(r.CPUModel)
	d.Cores = r.Cores
	d.RAMGB = r.RAMGB
	d.Storage = strings.TrimSpace(r.Storage)
	if d.Storage == "" {
		d.Storage = "500GB"
	}
	d.StorageType = r.StorageType
	d.Speed = r.ConnectionSpeed
	d.Price = r.Price
	d.OldPrice = r.OldPrice
	d.Brand = strings.TrimSpace(r.Brand)
	if d.Brand == "" {
		d.Brand = "Generic"
	}
	d.Bandwidth = strings.TrimSpace(r.Bandwidth)
	if d.Bandwidth == "" {
		d.Bandwidth = "Unlimited"
	}
	d.Location = r.Location
	d.Description = r.Description
	d.Featured = r.Featured
	d.Limited = r.Limited
	d.InStock = r.InStock == nil || *r.InStock
}

func (h *AdminCatalogHandler) changed(c *fiber.Ctx, kind catalog.Kind) {
	if h.Notifier != nil {
		h.Notifier.CatalogUpdated(c.UserContext(), kind)
	}
}

func listOptions(c *fiber.Ctx) store.ListOptions {
	return store.ListOptions{
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order", "asc"),
	}
}

// ==== VPS ====

func (h *AdminCatalogHandler) ListVPS(c *fiber.Ctx) error {
	rows, err := h.Store.VPS.List(c.UserContext(), listOptions(c))
	if err != nil {
		return serverError(c, err, "Failed to load VPS plans")
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *AdminCatalogHandler) GetVPS(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	row, err := h.Store.VPS.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "VPS plan")
	}
	return c.JSON(fiber.Map{"success": true, "data": row})
}

func (h *AdminCatalogHandler) CreateVPS(c *fiber.Ctx) error {
	var req VPSReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	var row models.VPS
	req.apply(&row)
	if err := h.Store.VPS.Create(c.UserContext(), &row); err != nil {
		return storeError(c, err, "VPS plan")
	}
	h.changed(c, catalog.KindVPS)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "VPS plan created",
		"data":    row,
	})
}

func (h *AdminCatalogHandler) UpdateVPS(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req VPSReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	row, err := h.Store.VPS.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "VPS plan")
	}
	req.apply(row)
	if err := h.Store.VPS.Save(c.UserContext(), row); err != nil {
		return storeError(c, err, "VPS plan")
	}
	h.changed(c, catalog.KindVPS)

	return c.JSON(fiber.Map{"success": true, "message": "VPS plan updated", "data": row})
}

func (h *AdminCatalogHandler) DeleteVPS(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.Store.VPS.Delete(c.UserContext(), id); err != nil {
		return storeError(c, err, "VPS plan")
	}
	h.changed(c, catalog.KindVPS)

	return c.JSON(fiber.Map{"success": true, "message": "VPS plan deleted"})
}

// ==== DEDICATED ====

func (h *AdminCatalogHandler) ListDedicated(c *fiber.Ctx) error {
	rows, err := h.Store.Dedicated.List(c.UserContext(), listOptions(c))
	if err != nil {
		return serverError(c, err, "Failed to load dedicated servers")
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *AdminCatalogHandler) GetDedicated(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	row, err := h.Store.Dedicated.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Dedicated server")
	}
	return c.JSON(fiber.Map{"success": true, "data": row})
}

func (h *AdminCatalogHandler) CreateDedicated(c *fiber.Ctx) error {
	var req DedicatedReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	var row models.Dedicated
	req.apply(&row)
	if err := h.Store.Dedicated.Create(c.UserContext(), &row); err != nil {
		return storeError(c, err, "Dedicated server")
	}
	h.changed(c, catalog.KindDedicated)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Dedicated server created",
		"data":    row,
	})
}

func (h *AdminCatalogHandler) UpdateDedicated(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req DedicatedReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	row, err := h.Store.Dedicated.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Dedicated server")
	}
	req.apply(row)
	if err := h.Store.Dedicated.Save(c.UserContext(), row); err != nil {
		return storeError(c, err, "Dedicated server")
	}
	h.changed(c, catalog.KindDedicated)

	return c.JSON(fiber.Map{"success": true, "message": "Dedicated server updated", "data": row})
}

func (h *AdminCatalogHandler) DeleteDedicated(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.Store.Dedicated.Delete(c.UserContext(), id); err != nil {
		return storeError(c, err, "Dedicated server")
	}
	h.changed(c, catalog.KindDedicated)

	return c.JSON(fiber.Map{"success": true, "message": "Dedicated server deleted"})
}

// ==== IMPORT ====

// Import pulls a supplier feed, normalizes it and upserts rows by name.
func (h *AdminCatalogHandler) Import(c *fiber.Ctx) error {
	kind, ok := catalog.ParseKind(c.Params("kind"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Unknown catalog")
	}

	var req struct {
		URL string `json:"url" validate:"omitempty,url"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid body")
		}
		if errs := validation.Struct(req); errs != nil {
			return validationFail(c, errs)
		}
	}

	src, ok := h.Upstreams[kind]
	if req.URL != "" {
		src, ok = catalog.HTTPSource{URL: req.URL}, true
	}
	if !ok || src == nil {
		return fail(c, fiber.StatusBadRequest, "No upstream feed configured for "+string(kind))
	}

	loader := catalog.NewLoader(0)
	if h.Loader != nil {
		loader = h.Loader
	}
	products, err := loader.Fetch(c.UserContext(), kind, src)
	if err != nil {
		logger.WithRequest(c).WithError(err).Warn("catalog import fetch failed")
		return fail(c, fiber.StatusBadGateway, "Unable to load upstream feed")
	}

	created, updated, err := h.upsert(c.UserContext(), kind, products)
	if err != nil {
		return serverError(c, err, "Failed to import catalog")
	}
	if created+updated > 0 {
		h.changed(c, kind)
	}

	logger.WithRequest(c).WithFields(logrus.Fields{
		"kind":    kind,
		"fetched": len(products),
		"created": created,
		"updated": updated,
	}).Info("catalog imported")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Catalog imported",
		"data": fiber.Map{
			"fetched": len(products),
			"created": created,
			"updated": updated,
		},
	})
}

func nameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (h *AdminCatalogHandler) upsert(ctx context.Context, kind catalog.Kind, products []catalog.Product) (created, updated int, err error) {
	if kind == catalog.KindVPS {
		rows, err := store.ListAll(ctx, h.Store.VPS, nil)
		if err != nil {
			return 0, 0, err
		}
		byName := map[string]*models.VPS{}
		for i := range rows {
			byName[nameKey(rows[i].Name)] = &rows[i]
		}
		for _, p := range products {
			if row, ok := byName[nameKey(p.Name)]; ok {
				vpsFromProduct(p, row)
				if err := h.Store.VPS.Save(ctx, row); err != nil {
					return created, updated, err
				}
				updated++
				continue
			}
			var row models.VPS
			vpsFromProduct(p, &row)
			if err := h.Store.VPS.Create(ctx, &row); err != nil {
				return created, updated, err
			}
			byName[nameKey(row.Name)] = &row
			created++
		}
		return created, updated, nil
	}

	rows, err := store.ListAll(ctx, h.Store.Dedicated, nil)
	if err != nil {
		return 0, 0, err
	}
	byName := map[string]*models.Dedicated{}
	for i := range rows {
		byName[nameKey(rows[i].Name)] = &rows[i]
	}
	for _, p := range products {
		if row, ok := byName[nameKey(p.Name)]; ok {
			dedicatedFromProduct(p, row)
			if err := h.Store.Dedicated.Save(ctx, row); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}
		var row models.Dedicated
		dedicatedFromProduct(p, &row)
		if err := h.Store.Dedicated.Create(ctx, &row); err != nil {
			return created, updated, err
		}
		byName[nameKey(row.Name)] = &row
		created++
	}
	return created, updated, nil
}
