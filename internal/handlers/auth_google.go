package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/logger"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleOAuthHandler struct {
	Auth            *AuthHandler
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) tempCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Auth.Secure,
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

// safeNext keeps post-login redirects on the frontend.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)

	h.tempCookie(c, "oauth_state", st, 10*60)
	h.tempCookie(c, "oauth_next", safeNext(c.Query("next", "/")), 10*60)

	authURL := h.oauthCfg().AuthCodeURL(st, oauth2.AccessTypeOffline)
	return c.Redirect(authURL, http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *GoogleOAuthHandler) loginError(c *fiber.Ctx, msg string) error {
	return c.Redirect(h.FrontendBaseURL+"/auth/login?err="+url.QueryEscape(msg), http.StatusTemporaryRedirect)
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return fail(c, fiber.StatusBadRequest, "Missing code/state")
	}

	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return fail(c, fiber.StatusBadRequest, "Invalid state")
	}
	next := safeNext(c.Cookies("oauth_next"))

	tok, err := h.oauthCfg().Exchange(c.UserContext(), code)
	if err != nil {
		logger.WithRequest(c).WithError(err).Warn("google code exchange failed")
		return fail(c, fiber.StatusBadRequest, "Failed to exchange code")
	}

	resp, err := h.oauthCfg().Client(c.UserContext(), tok).Get(googleUserInfoURL)
	if err != nil {
		return fail(c, fiber.StatusBadGateway, "Failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return fail(c, fiber.StatusBadGateway, "Failed to decode userinfo")
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	name := strings.TrimSpace(gu.Name)
	if email == "" {
		return h.loginError(c, "Email not provided by Google")
	}

	users := h.Auth.Users
	u, err := users.FindByEmail(c.UserContext(), email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// password is required by the schema but never usable for this account
		hashed, herr := utils.HashPassword(randomState(24))
		if herr != nil {
			return serverError(c, herr, "Failed to create account")
		}
		u = &models.User{Name: name, Email: email, Password: hashed, Role: models.RoleCustomer}
		if err := users.Create(c.UserContext(), u); err != nil {
			return serverError(c, err, "Failed to create account")
		}
	case err != nil:
		return serverError(c, err, "Failed to load account")
	case name != "" && u.Name != name:
		u.Name = name
		if err := users.Save(c.UserContext(), u); err != nil {
			logger.WithRequest(c).WithError(err).Warn("update google user name")
		}
	}

	if u.IsBlocked {
		return h.loginError(c, "Account is blocked")
	}

	jwtToken, err := utils.SignJWT(h.Auth.JWTSecret, u.ID.String(), string(u.Role), h.Auth.Expires)
	if err != nil {
		return serverError(c, err, "Failed to sign token")
	}

	h.Auth.setSession(c, jwtToken, h.Auth.Expires*60)
	h.tempCookie(c, "oauth_state", "", -1)
	h.tempCookie(c, "oauth_next", "", -1)

	return c.Redirect(h.FrontendBaseURL+next, http.StatusTemporaryRedirect)
}
