package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/invoice"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/logger"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/uploads"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/utils"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/validation"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/whatsapp"
)

type OrderHandler struct {
	Store          *store.Store
	Uploads        uploads.Storage
	IDKey          string
	WhatsAppNumber string
	Issuer         invoice.Issuer
}

// ==== REQUEST STRUCTS ====

type CreateOrderReq struct {
	CustomerName  string `json:"customerName" validate:"required,min=2,max=120,no_xss"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,eg_phone"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=vodafone_cash instapay binance"`
	OS            string `json:"os" validate:"required,oneof=linux windows"`
	VPSID         uint   `json:"vpsId" validate:"required_without=DedicatedID,excluded_with=DedicatedID"`
	DedicatedID   uint   `json:"dedicatedId" validate:"required_without=VPSID"`
	Notes         string `json:"notes" validate:"max=1000,no_xss"`
}

type UpdateOrderStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed active cancelled"`
}

// formValue reads a multipart field sent in camel or Pascal case.
func formValue(c *fiber.Ctx, camel string) string {
	if v := strings.TrimSpace(c.FormValue(camel)); v != "" {
		return v
	}
	pascal := strings.ToUpper(camel[:1]) + camel[1:]
	return strings.TrimSpace(c.FormValue(pascal))
}

func formFile(c *fiber.Ctx, camel string) *multipart.FileHeader {
	if fh, err := c.FormFile(camel); err == nil {
		return fh
	}
	pascal := strings.ToUpper(camel[:1]) + camel[1:]
	if fh, err := c.FormFile(pascal); err == nil {
		return fh
	}
	return nil
}

// formID parses an optional id field; empty means absent.
func formID(c *fiber.Ctx, camel string, errs FieldErrors) uint {
	raw := formValue(c, camel)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		errs.Add(camel, "must be a number")
		return 0
	}
	return uint(n)
}

func (h *OrderHandler) product(c *fiber.Ctx, req CreateOrderReq) (catalog.Product, error) {
	if req.VPSID != 0 {
		row, err := h.Store.VPS.Get(c.UserContext(), req.VPSID)
		if err != nil {
			return catalog.Product{}, err
		}
		return toProduct(catalog.KindVPS, row), nil
	}
	row, err := h.Store.Dedicated.Get(c.UserContext(), req.DedicatedID)
	if err != nil {
		return catalog.Product{}, err
	}
	return toProduct(catalog.KindDedicated, row), nil
}

// snapshotOf freezes the product as it was at checkout.
func snapshotOf(p catalog.Product) (datatypes.JSON, error) {
	b, err := json.Marshal(p.Record())
	if err != nil {
		return nil, fmt.Errorf("encode product snapshot: %w", err)
	}
	return datatypes.JSON(b), nil
}

// ==== HANDLER ====

// Create accepts the checkout form, stores the payment proof and answers
// with the WhatsApp handoff link.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	errs := FieldErrors{}
	req := CreateOrderReq{
		CustomerName:  formValue(c, "customerName"),
		PhoneNumber:   formValue(c, "phoneNumber"),
		PaymentMethod: strings.ToLower(formValue(c, "paymentMethod")),
		OS:            strings.ToLower(formValue(c, "os")),
		Notes:         formValue(c, "notes"),
		VPSID:         formID(c, "vpsId", errs),
		DedicatedID:   formID(c, "dedicatedId", errs),
	}
	if req.OS == "" {
		req.OS = strings.ToLower(strings.TrimSpace(c.FormValue("OS")))
	}
	if req.OS == "" {
		req.OS = "linux"
	}

	if verrs := validation.Struct(req); verrs != nil {
		for f, msgs := range verrs {
			for _, m := range msgs {
				errs.Add(f, m)
			}
		}
	}

	image := formFile(c, "paymentImage")
	if image != nil {
		if err := uploads.CheckImage(image); err != nil {
			errs.Add("paymentImage", err.Error())
		}
	}

	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	p, err := h.product(c, req)
	if err != nil {
		return storeError(c, err, "Product")
	}
	if !p.HasPrice() || !p.InStock {
		return fail(c, fiber.StatusConflict, "Product is not available")
	}

	snapshot, err := snapshotOf(p)
	if err != nil {
		return serverError(c, err, "Failed to create order")
	}
	o := models.Order{
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
		PaymentMethod:   req.PaymentMethod,
		OS:              req.OS,
		ProductName:     p.Name,
		Price:           p.Price,
		ProductSnapshot: snapshot,
		Notes:           req.Notes,
		Status:          models.OrderPending,
	}
	if req.VPSID != 0 {
		o.VPSID = &req.VPSID
	} else {
		o.DedicatedID = &req.DedicatedID
	}
	if uid, err := getUserUUID(c); err == nil {
		o.UserID = &uid
	}

	if err := h.Store.Orders.Create(c.UserContext(), &o); err != nil {
		return serverError(c, err, "Failed to create order")
	}

	// upload only once the row exists
	if image != nil {
		imageURL, err := h.Uploads.Save(c.UserContext(), image, "order")
		if err != nil {
			h.discard(c, o.ID)
			return serverError(c, err, "Failed to save payment image")
		}
		o.PaymentImageURL = imageURL
	}

	o.Description = whatsapp.Describe(whatsapp.OrderDetails{
		OrderID:       o.ID,
		CustomerName:  o.CustomerName,
		PhoneNumber:   o.PhoneNumber,
		OS:            o.OS,
		PaymentMethod: o.PaymentMethod,
		Notes:         o.Notes,
		Product:       p,
	})
	if err := h.Store.Orders.Save(c.UserContext(), &o); err != nil {
		return serverError(c, err, "Failed to create order")
	}

	token, err := utils.EncryptID(o.ID, h.IDKey)
	if err != nil {
		// the order exists; tracking is optional
		logger.WithRequest(c).WithError(err).Error("encrypt order tracking id")
	}

	logger.WithRequest(c).WithFields(logrus.Fields{
		"order_id": o.ID,
		"product":  p.ID,
		"kind":     p.Kind,
	}).Info("order created")

	const msg = "Order created successfully"
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": msg,
		"data": fiber.Map{
			"orderId":       o.ID,
			"message":       msg,
			"description":   o.Description,
			"imageUrl":      nullable(o.PaymentImageURL),
			"trackingToken": token,
			"whatsappUrl":   whatsapp.Link(h.WhatsAppNumber, o.Description),
		},
	})
}

// discard removes an order whose checkout could not complete.
func (h *OrderHandler) discard(c *fiber.Ctx, id uint) {
	if err := h.Store.Orders.Delete(c.UserContext(), id); err != nil {
		logger.WithRequest(c).WithError(err).WithField("order_id", id).Error("discard incomplete order")
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Track lets a customer follow an order with the token from checkout.
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	id, err := utils.DecryptID(c.Params("token"), h.IDKey)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}

	o, err := h.Store.Orders.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Order")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"orderId":     o.ID,
			"status":      o.Status,
			"productName": o.ProductName,
			"productType": o.ProductKind(),
			"price":       o.Price,
			"createdAt":   o.CreatedAt,
			"updatedAt":   o.UpdatedAt,
		},
	})
}

// ==== ADMIN ====

func (h *OrderHandler) List(c *fiber.Ctx) error {
	opts := store.ListOptions{
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
		SortBy:    c.Query("sort", "created_at"),
		SortOrder: c.Query("order", "desc"),
	}
	if st := models.OrderStatus(strings.ToLower(c.Query("status"))); st.Valid() {
		opts.Where = map[string]any{"status": string(st)}
	}

	orders, err := h.Store.Orders.List(c.UserContext(), opts)
	if err != nil {
		return serverError(c, err, "Failed to load orders")
	}
	total, err := h.Store.Orders.CountWhere(c.UserContext(), opts.Where)
	if err != nil {
		return serverError(c, err, "Failed to load orders")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"meta": fiber.Map{
			"total":  total,
			"limit":  opts.Limit,
			"offset": opts.Offset,
		},
	})
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	o, err := h.Store.Orders.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Order")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    o,
	})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var req UpdateOrderStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	o, err := h.Store.Orders.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Order")
	}

	next := models.OrderStatus(req.Status)
	if !o.Status.CanTransition(next) {
		return fail(c, fiber.StatusConflict, fmt.Sprintf("Cannot move order from %s to %s", o.Status, next))
	}

	o.Status = next
	if err := h.Store.Orders.Save(c.UserContext(), o); err != nil {
		return serverError(c, err, "Failed to update order")
	}

	logger.WithRequest(c).WithFields(logrus.Fields{"order_id": o.ID, "status": o.Status}).Info("order status changed")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order updated",
		"data":    o,
	})
}

// Invoice streams the order invoice as a PDF download.
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	o, err := h.Store.Orders.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Order")
	}
	if o.Status == models.OrderCancelled {
		return fail(c, fiber.StatusConflict, "Cancelled orders have no invoice")
	}

	pdf, err := invoice.Render(*o, h.Issuer)
	if err != nil {
		return serverError(c, err, "Failed to render invoice")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="invoice-%06d.pdf"`, o.ID))
	return c.Send(pdf)
}
