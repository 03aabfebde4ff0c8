package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/utils"
)

const secret = "test-secret"

func token(t *testing.T, uid, role string) string {
	t.Helper()
	tok, err := utils.SignJWT(secret, uid, role, 5)
	require.NoError(t, err)
	return tok
}

func protectedApp(roles ...string) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{JWTFromCookie(secret), AttachJWTLocals()}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userId").(string) + "|" + c.Locals("role").(string))
	})
	app.Get("/", chain...)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestJWT_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token(t, "u-1", "Admin")})

	resp, body := do(t, protectedApp(), req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-1|admin", body)
}

func TestJWT_Bearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "u-2", "customer"))

	resp, body := do(t, protectedApp(), req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-2|customer", body)
}

func TestJWT_MissingOrInvalid(t *testing.T) {
	resp, _ := do(t, protectedApp(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	other, err := utils.SignJWT("other-secret", "u-1", "admin", 5)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: other})
	resp, _ = do(t, protectedApp(), req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	app := protectedApp("admin", "moderator")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token(t, "u-1", "customer")})
	resp, _ := do(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token(t, "u-1", "moderator")})
	resp, _ = do(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalJWT(t *testing.T) {
	app := fiber.New()
	app.Get("/", OptionalJWT(secret), func(c *fiber.Ctx) error {
		uid, _ := c.Locals("userId").(string)
		return c.SendString("uid=" + uid)
	})

	_, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "uid=", body)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token(t, "u-9", "customer"))
	_, body = do(t, app, req)
	assert.Equal(t, "uid=u-9", body)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, body := do(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "uid=", body)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/orders", RateLimit(NewMemoryRateStore(), 2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, app, httptest.NewRequest(http.MethodPost, "/orders", nil))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := do(t, app, httptest.NewRequest(http.MethodPost, "/orders", nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Contains(t, body, "Too many requests")
}

func TestMemoryRateStore_WindowExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryRateStore()
	s.now = func() time.Time { return now }

	n, _, _ := s.Hit(context.Background(), "k", time.Minute)
	assert.EqualValues(t, 1, n)
	n, _, _ = s.Hit(context.Background(), "k", time.Minute)
	assert.EqualValues(t, 2, n)

	now = now.Add(time.Minute)
	n, reset, _ := s.Hit(context.Background(), "k", time.Minute)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, now.Add(time.Minute), reset)
}

func TestMemoryRateStore_SweepsExpiredWindows(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryRateStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	for _, ip := range []string{"a", "b", "c"} {
		_, _, err := s.Hit(ctx, "rl:"+ip, time.Minute)
		require.NoError(t, err)
	}
	require.Len(t, s.windows, 3)

	now = now.Add(2 * time.Minute)
	_, _, err := s.Hit(ctx, "rl:d", time.Minute)
	require.NoError(t, err)
	assert.Len(t, s.windows, 1)
	assert.Contains(t, s.windows, "rl:d")
}

func newRedisRateStore(t *testing.T) (*RedisRateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRateStore(rdb), mr
}

func TestRedisRateStore_CountsAndExpires(t *testing.T) {
	s, mr := newRedisRateStore(t)
	ctx := context.Background()

	n, reset, err := s.Hit(ctx, "rl:k", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.WithinDuration(t, time.Now().Add(time.Minute), reset, 2*time.Second)
	assert.Equal(t, time.Minute, mr.TTL("rl:k"))

	n, _, err = s.Hit(ctx, "rl:k", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	mr.FastForward(time.Minute)
	n, _, err = s.Hit(ctx, "rl:k", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRedisRateStore_HealsKeyWithoutTTL(t *testing.T) {
	s, mr := newRedisRateStore(t)
	require.NoError(t, mr.Set("rl:stuck", "7"))
	require.Zero(t, mr.TTL("rl:stuck"))

	n, _, err := s.Hit(context.Background(), "rl:stuck", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)
	assert.Equal(t, time.Minute, mr.TTL("rl:stuck"))
}
