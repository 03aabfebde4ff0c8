package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/utils"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/validation"
)

type AuthHandler struct {
	Users     store.UserRepository
	JWTSecret string
	Expires   int
	Secure    bool
}

type RegisterReq struct {
	Name     string `json:"name" validate:"required,max=120,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"omitempty,eg_phone"`
}

func userJSON(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone(),
		"role":  u.Role,
	}
}

func (h *AuthHandler) setSession(c *fiber.Ctx, token string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Password = strings.TrimSpace(req.Password)

	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	if _, err := h.Users.FindByEmail(c.UserContext(), req.Email); err == nil {
		errs := FieldErrors{}
		errs.Add("email", "is already registered")
		return validationFail(c, errs)
	} else if !errors.Is(err, store.ErrNotFound) {
		return serverError(c, err, "Failed to register")
	}

	pw, err := utils.HashPassword(req.Password)
	if err != nil {
		return serverError(c, err, "Failed to process password")
	}

	u := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: pw,
		Role:     models.RoleCustomer,
	}
	if req.Phone != "" {
		u.PhoneNumber = &req.Phone
	}

	if err := h.Users.Create(c.UserContext(), &u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			errs := FieldErrors{}
			errs.Add("phone", "is already registered")
			return validationFail(c, errs)
		}
		return serverError(c, err, "Failed to register")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return serverError(c, err, "Failed to create token")
	}
	h.setSession(c, token, h.Expires*60)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registered",
		"data": fiber.Map{
			"user": userJSON(&u),
		},
	})
}

type LoginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusOK, "Invalid body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Password = strings.TrimSpace(req.Password)

	if errs := validation.Struct(req); errs != nil {
		return validationFail(c, errs)
	}

	// unknown email and wrong password answer the same, with 200
	u, err := h.Users.FindByEmail(c.UserContext(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return serverError(c, err, "Failed to log in")
		}
		return fail(c, fiber.StatusOK, "Wrong email or password")
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		return fail(c, fiber.StatusOK, "Wrong email or password")
	}

	if u.IsBlocked {
		return fail(c, fiber.StatusOK, "Account is blocked")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return serverError(c, err, "Failed to create token")
	}
	h.setSession(c, token, h.Expires*60)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in",
		"data": fiber.Map{
			"user": userJSON(u),
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setSession(c, "", -1)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	u, err := h.Users.Get(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusUnauthorized, "User not found")
		}
		return serverError(c, err, "Failed to load user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    userJSON(u),
	})
}
