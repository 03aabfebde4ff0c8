package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/validation"
)

type PromoHandler struct {
	Promos store.CRUD[models.Promo]
}

type PromoReq struct {
	Title       string `json:"title" validate:"required,max=160,no_xss"`
	Description string `json:"description" validate:"max=2000,no_xss"`
	PromoType   string `json:"promoType" validate:"omitempty,oneof=banner discount bundle seasonal"`
	IsActive    *bool  `json:"isActive"`
}

func (r PromoReq) apply(p *models.Promo) {
	p.Title = strings.TrimSpace(r.Title)
	p.Description = strings.TrimSpace(r.Description)
	p.PromoType = r.PromoType
	if p.PromoType == "" {
		p.PromoType = "banner"
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// Active lists promos visible on the storefront.
func (h *PromoHandler) Active(c *fiber.Ctx) error {
	rows, err := h.Promos.List(c.UserContext(), store.ListOptions{
		Limit: 20,
		Where: map[string]any{"is_active": true},
	})
	if err != nil {
		return serverError(c, err, "Failed to load promos")
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *PromoHandler) List(c *fiber.Ctx) error {
	opts := store.ListOptions{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	switch c.Query("active") {
	case "true":
		opts.Where = map[string]any{"is_active": true}
	case "false":
		opts.Where = map[string]any{"is_active": false}
	}
	rows, err := h.Promos.List(c.UserContext(), opts)
	if err != nil {
		return serverError(c, err, "Failed to load promos")
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *PromoHandler) Create(c *fiber.Ctx) error {
	var req PromoReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	p := models.Promo{IsActive: true}
	req.apply(&p)
	if err := h.Promos.Create(c.UserContext(), &p); err != nil {
		return storeError(c, err, "Promo")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Promo created",
		"data":    p,
	})
}

func (h *PromoHandler) Update(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req PromoReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	p, err := h.Promos.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Promo")
	}
	req.apply(p)
	if err := h.Promos.Save(c.UserContext(), p); err != nil {
		return storeError(c, err, "Promo")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Promo updated", "data": p})
}

func (h *PromoHandler) Delete(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.Promos.Delete(c.UserContext(), id); err != nil {
		return storeError(c, err, "Promo")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Promo deleted"})
}
