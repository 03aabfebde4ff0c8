package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/utils"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/validation"
)

// UserHandler is the admin user directory.
type UserHandler struct {
	Users store.UserRepository
}

type CreateUserReq struct {
	Name     string `json:"name" validate:"required,max=120,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"omitempty,eg_phone"`
	Role     string `json:"role" validate:"omitempty,oneof=customer moderator admin"`
}

type UpdateUserReq struct {
	Name      string `json:"name" validate:"required,max=120,no_xss"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,eg_phone"`
	Role      string `json:"role" validate:"omitempty,oneof=customer moderator admin"`
	IsBlocked *bool  `json:"isBlocked"`
	Password  string `json:"password" validate:"omitempty,min=6,max=72"`
}

func adminUserJSON(u *models.User) fiber.Map {
	m := userJSON(u)
	m["isBlocked"] = u.IsBlocked
	m["createdAt"] = u.CreatedAt
	return m
}

func (h *UserHandler) userParam(c *fiber.Ctx) (*models.User, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fail(c, fiber.StatusBadRequest, "Invalid user id")
	}
	u, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return nil, storeError(c, err, "User")
	}
	return u, nil
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	opts := store.ListOptions{
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
		SortBy:    "created_at",
		SortOrder: "desc",
	}
	if r := models.Role(c.Query("role")); r.Valid() {
		opts.Where = map[string]any{"role": r}
	}
	rows, err := h.Users.List(c.UserContext(), opts)
	if err != nil {
		return serverError(c, err, "Failed to load users")
	}
	out := make([]fiber.Map, 0, len(rows))
	for i := range rows {
		out = append(out, adminUserJSON(&rows[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	u, err := h.userParam(c)
	if u == nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": adminUserJSON(u)})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	if _, err := h.Users.FindByEmail(c.UserContext(), req.Email); err == nil {
		errs := FieldErrors{}
		errs.Add("email", "is already registered")
		return validationFail(c, errs)
	} else if !errors.Is(err, store.ErrNotFound) {
		return serverError(c, err, "Failed to create user")
	}

	pw, err := utils.HashPassword(req.Password)
	if err != nil {
		return serverError(c, err, "Failed to process password")
	}
	u := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: pw,
		Role:     models.Role(req.Role),
	}
	if u.Role == "" {
		u.Role = models.RoleCustomer
	}
	if req.Phone != "" {
		u.PhoneNumber = &req.Phone
	}
	if err := h.Users.Create(c.UserContext(), &u); err != nil {
		return storeError(c, err, "User")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created",
		"data":    adminUserJSON(&u),
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	u, err := h.userParam(c)
	if u == nil {
		return err
	}

	self, _ := getUserUUID(c)
	if u.ID == self {
		if req.IsBlocked != nil && *req.IsBlocked {
			return fail(c, fiber.StatusConflict, "You cannot block yourself")
		}
		if req.Role != "" && models.Role(req.Role) != u.Role {
			return fail(c, fiber.StatusConflict, "You cannot change your own role")
		}
	}

	if req.Email != u.Email {
		if other, err := h.Users.FindByEmail(c.UserContext(), req.Email); err == nil && other.ID != u.ID {
			errs := FieldErrors{}
			errs.Add("email", "is already registered")
			return validationFail(c, errs)
		}
	}

	u.Name = strings.TrimSpace(req.Name)
	u.Email = req.Email
	u.PhoneNumber = nil
	if req.Phone != "" {
		u.PhoneNumber = &req.Phone
	}
	if req.Role != "" {
		u.Role = models.Role(req.Role)
	}
	if req.IsBlocked != nil {
		u.IsBlocked = *req.IsBlocked
	}
	if req.Password != "" {
		pw, err := utils.HashPassword(req.Password)
		if err != nil {
			return serverError(c, err, "Failed to process password")
		}
		u.Password = pw
	}

	if err := h.Users.Save(c.UserContext(), u); err != nil {
		return storeError(c, err, "User")
	}
	return c.JSON(fiber.Map{"success": true, "message": "User updated", "data": adminUserJSON(u)})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	u, err := h.userParam(c)
	if u == nil {
		return err
	}
	if self, _ := getUserUUID(c); u.ID == self {
		return fail(c, fiber.StatusConflict, "You cannot delete yourself")
	}
	if err := h.Users.Delete(c.UserContext(), u.ID); err != nil {
		return storeError(c, err, "User")
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted"})
}
