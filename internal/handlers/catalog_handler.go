package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/logger"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/whatsapp"
)

// CatalogHandler serves the public VPS and dedicated listings.
type CatalogHandler struct {
	Loader         *catalog.Loader
	WhatsAppNumber string
}

func NewCatalogHandler(loader *catalog.Loader, whatsAppNumber string) *CatalogHandler {
	return &CatalogHandler{Loader: loader, WhatsAppNumber: whatsAppNumber}
}

// load resolves :kind and fetches that catalog. ok is false when a response
// has already been written.
func (h *CatalogHandler) load(c *fiber.Ctx) (catalog.Kind, []catalog.Product, bool, error) {
	kind, valid := catalog.ParseKind(c.Params("kind"))
	if !valid {
		return "", nil, false, fail(c, fiber.StatusNotFound, "Unknown catalog")
	}

	products, err := h.Loader.Load(c.UserContext(), kind)
	if err != nil {
		logger.WithRequest(c).WithError(err).Warn("catalog load failed")
		return kind, nil, false, fail(c, fiber.StatusBadGateway, "Unable to load products")
	}
	return kind, products, true, nil
}

func queryValues(c *fiber.Ctx) url.Values {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return q
}

// List returns the filtered, price sorted catalog.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	_, products, ok, err := h.load(c)
	if !ok {
		return err
	}

	sel := catalog.ParseSelection(queryValues(c))
	items := catalog.ApplyFilters(products, sel)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"meta": fiber.Map{
			"total":         len(products),
			"matched":       len(items),
			"activeFilters": sel.ActiveCount(),
			"filters":       sel.Map(),
		},
	})
}

func (h *CatalogHandler) Featured(c *fiber.Ctx) error {
	kind, products, ok, err := h.load(c)
	if !ok {
		return err
	}

	deals := catalog.RankTopDealsFor(kind, products)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    deals,
	})
}

func (h *CatalogHandler) Facets(c *fiber.Ctx) error {
	_, products, ok, err := h.load(c)
	if !ok {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    catalog.Facets(products),
	})
}

func (h *CatalogHandler) find(c *fiber.Ctx) (catalog.Product, bool, error) {
	_, products, ok, err := h.load(c)
	if !ok {
		return catalog.Product{}, false, err
	}

	id := c.Params("id")
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return catalog.Product{}, false, fail(c, fiber.StatusNotFound, "Product not found")
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	p, ok, err := h.find(c)
	if !ok {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    p,
	})
}

// OrderWhatsApp returns the wa.me link for asking about a product.
func (h *CatalogHandler) OrderWhatsApp(c *fiber.Ctx) error {
	p, ok, err := h.find(c)
	if !ok {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"url": whatsapp.InterestLink(h.WhatsAppNumber, p),
		},
	})
}

// Combined loads both catalogs at once. One failing side is reported next to
// the data of the other.
func (h *CatalogHandler) Combined(c *fiber.Ctx) error {
	snap := h.Loader.LoadAll(c.UserContext())

	errs := fiber.Map{}
	for kind, err := range snap.Errors {
		logger.WithRequest(c).WithError(err).WithField("kind", kind).Warn("catalog load failed")
		errs[string(kind)] = "Unable to load products"
	}

	if snap.Failed() {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Unable to load products",
			"errors":  errs,
		})
	}

	vps := snap.Products(catalog.KindVPS)
	ded := snap.Products(catalog.KindDedicated)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"vps":       nonNil(vps),
			"dedicated": nonNil(ded),
			"featured": fiber.Map{
				"vps":       catalog.RankTopDealsFor(catalog.KindVPS, vps),
				"dedicated": catalog.RankTopDealsFor(catalog.KindDedicated, ded),
			},
		},
		"errors": errs,
	})
}

func nonNil(ps []catalog.Product) []catalog.Product {
	if ps == nil {
		return []catalog.Product{}
	}
	return ps
}
