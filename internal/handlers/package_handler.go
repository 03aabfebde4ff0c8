package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/validation"
)

type PackageHandler struct {
	Store *store.Store
}

type PackageReq struct {
	Name           string  `json:"name" validate:"required,max=120,no_xss"`
	TotalPrice     float64 `json:"totalPrice" validate:"gte=0"`
	DurationMonths int     `json:"durationMonths" validate:"required,gte=1,lte=60"`
}

type PackageItemReq struct {
	PackageID   uint   `json:"packageId" validate:"required"`
	ProductType string `json:"productType" validate:"required,oneof=vps dedicated"`
	ProductID   uint   `json:"productId" validate:"required"`
	Quantity    int    `json:"quantity" validate:"omitempty,gte=1,lte=100"`
	Note        string `json:"note" validate:"max=255,no_xss"`
}

// ==== PUBLIC ====

func (h *PackageHandler) List(c *fiber.Ctx) error {
	rows, err := h.Store.Packages.List(c.UserContext(), store.ListOptions{
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
		SortBy:    "total_price",
		SortOrder: "asc",
	})
	if err != nil {
		return serverError(c, err, "Failed to load packages")
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *PackageHandler) Get(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	pkg, err := h.Store.Packages.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Package")
	}
	items, err := h.Store.Packages.Items(c.UserContext(), pkg.ID)
	if err != nil {
		return serverError(c, err, "Failed to load package items")
	}
	pkg.Items = items
	return c.JSON(fiber.Map{"success": true, "data": pkg})
}

func (h *PackageHandler) Items(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if _, err := h.Store.Packages.Get(c.UserContext(), id); err != nil {
		return storeError(c, err, "Package")
	}
	items, err := h.Store.Packages.Items(c.UserContext(), id)
	if err != nil {
		return serverError(c, err, "Failed to load package items")
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// ==== ADMIN ====

func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var req PackageReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	pkg := models.Package{
		Name:           strings.TrimSpace(req.Name),
		TotalPrice:     req.TotalPrice,
		DurationMonths: req.DurationMonths,
	}
	if err := h.Store.Packages.Create(c.UserContext(), &pkg); err != nil {
		return storeError(c, err, "Package")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Package created",
		"data":    pkg,
	})
}

func (h *PackageHandler) Update(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req PackageReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	pkg, err := h.Store.Packages.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Package")
	}
	pkg.Name = strings.TrimSpace(req.Name)
	pkg.TotalPrice = req.TotalPrice
	pkg.DurationMonths = req.DurationMonths
	// items are managed through their own endpoints
	pkg.Items = nil
	if err := h.Store.Packages.Save(c.UserContext(), pkg); err != nil {
		return storeError(c, err, "Package")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Package updated", "data": pkg})
}

func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.Store.Packages.Delete(c.UserContext(), id); err != nil {
		return storeError(c, err, "Package")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Package deleted"})
}

func (h *PackageHandler) AddItem(c *fiber.Ctx) error {
	var req PackageItemReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item := models.PackageItem{
		PackageID:   req.PackageID,
		ProductType: models.ProductType(req.ProductType),
		Quantity:    req.Quantity,
		Note:        strings.TrimSpace(req.Note),
	}

	ctx := c.UserContext()
	switch item.ProductType {
	case models.ProductTypeVPS:
		if _, err := h.Store.VPS.Get(ctx, req.ProductID); err != nil {
			return storeError(c, err, "VPS plan")
		}
		item.VPSID = &req.ProductID
	case models.ProductTypeDedicated:
		if _, err := h.Store.Dedicated.Get(ctx, req.ProductID); err != nil {
			return storeError(c, err, "Dedicated server")
		}
		item.DedicatedID = &req.ProductID
	}

	if err := h.Store.Packages.AddItem(ctx, &item); err != nil {
		return storeError(c, err, "Package")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item added to package",
		"data":    item,
	})
}

func (h *PackageHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.Store.Packages.DeleteItem(c.UserContext(), id); err != nil {
		return storeError(c, err, "Package item")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Package item removed"})
}
