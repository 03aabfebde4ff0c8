package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/config"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/invoice"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/uploads"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Config  config.Config
	Store   *store.Store
	Loader  *catalog.Loader
	Hub     *realtime.Hub
	Bus     CatalogNotifier
	Uploads uploads.Storage
	Limiter middleware.RateStore
	Log     *logrus.Logger
}

func upstreams(cfg config.Config) map[catalog.Kind]catalog.Source {
	out := map[catalog.Kind]catalog.Source{}
	if cfg.UpstreamVPSURL != "" {
		out[catalog.KindVPS] = catalog.HTTPSource{URL: cfg.UpstreamVPSURL}
	}
	if cfg.UpstreamDedicatedURL != "" {
		out[catalog.KindDedicated] = catalog.HTTPSource{URL: cfg.UpstreamDedicatedURL}
	}
	return out
}

// Routes mounts the storefront, auth, admin and websocket routes on app.
func Routes(app *fiber.App, d Deps) {
	cfg := d.Config

	authH := &AuthHandler{
		Users:     d.Store.Users,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
		Secure:    cfg.IsProduction(),
	}
	googleH := &GoogleOAuthHandler{
		Auth:            authH,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	catalogH := NewCatalogHandler(d.Loader, cfg.WhatsAppNumber)
	orderH := &OrderHandler{
		Store:          d.Store,
		Uploads:        d.Uploads,
		IDKey:          cfg.IDEncryptKey,
		WhatsAppNumber: cfg.WhatsAppNumber,
		Issuer:         invoice.Issuer{Name: "Hosting Store", Contact: cfg.WhatsAppNumber},
	}
	packageH := &PackageHandler{Store: d.Store}
	promoH := &PromoHandler{Promos: d.Store.Promos}
	userH := &UserHandler{Users: d.Store.Users}
	adminCatalogH := &AdminCatalogHandler{
		Store:     d.Store,
		Notifier:  d.Bus,
		Upstreams: upstreams(cfg),
		Loader:    catalog.NewLoader(cfg.CatalogFetchTimeout),
	}
	dashH := &DashboardHandler{Store: d.Store}
	if d.Hub != nil {
		dashH.Sessions = d.Hub
	}

	api := app.Group("/api")

	// ==== PUBLIC ====
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	api.Get("/catalog", catalogH.Combined)
	api.Get("/:kind/products", catalogH.List)
	api.Get("/:kind/products/featured", catalogH.Featured)
	api.Get("/:kind/products/facets", catalogH.Facets)
	api.Get("/:kind/products/:id", catalogH.Get)
	api.Get("/:kind/products/:id/order-whatsapp", catalogH.OrderWhatsApp)

	api.Get("/packages", packageH.List)
	api.Get("/packages/:id", packageH.Get)
	api.Get("/packages/:id/items", packageH.Items)
	api.Get("/promos", promoH.Active)

	orderLimit := cfg.OrderRateLimit
	if orderLimit <= 0 {
		orderLimit = 5
	}
	window := cfg.OrderRateWindow
	if window <= 0 {
		window = 10 * time.Minute
	}
	limiter := d.Limiter
	if limiter == nil {
		limiter = middleware.NewMemoryRateStore()
	}
	api.Post("/orders",
		middleware.OptionalJWT(cfg.JWTSecret),
		middleware.RateLimit(limiter, orderLimit, window),
		orderH.Create,
	)
	api.Get("/orders/track/:token", orderH.Track)

	// ==== SIGNED IN ====
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)
	protected.Get("/me", authH.Me)

	// ==== BACK OFFICE ====
	staff := protected.Group("/admin")
	admin := middleware.RequireRoles(string(models.RoleAdmin))
	readers := middleware.RequireRoles(string(models.RoleAdmin), string(models.RoleModerator))

	orders := staff.Group("/orders", readers)
	orders.Get("/", orderH.List)
	orders.Get("/:id", orderH.Get)
	orders.Get("/:id/invoice", orderH.Invoice)
	orders.Patch("/:id/status", admin, orderH.UpdateStatus)

	staff.Get("/dashboard/stats", admin, dashH.Summary)

	vps := staff.Group("/vps", admin)
	vps.Get("/", adminCatalogH.ListVPS)
	vps.Get("/:id", adminCatalogH.GetVPS)
	vps.Post("/", adminCatalogH.CreateVPS)
	vps.Put("/:id", adminCatalogH.UpdateVPS)
	vps.Delete("/:id", adminCatalogH.DeleteVPS)

	ded := staff.Group("/dedicated", admin)
	ded.Get("/", adminCatalogH.ListDedicated)
	ded.Get("/:id", adminCatalogH.GetDedicated)
	ded.Post("/", adminCatalogH.CreateDedicated)
	ded.Put("/:id", adminCatalogH.UpdateDedicated)
	ded.Delete("/:id", adminCatalogH.DeleteDedicated)

	staff.Post("/:kind/import", admin, adminCatalogH.Import)

	pkgs := staff.Group("/packages", admin)
	pkgs.Get("/", packageH.List)
	pkgs.Get("/:id", packageH.Get)
	pkgs.Post("/", packageH.Create)
	pkgs.Put("/:id", packageH.Update)
	pkgs.Delete("/:id", packageH.Delete)
	staff.Post("/package-items", admin, packageH.AddItem)
	staff.Delete("/package-items/:id", admin, packageH.DeleteItem)

	promos := staff.Group("/promos", admin)
	promos.Get("/", promoH.List)
	promos.Post("/", promoH.Create)
	promos.Put("/:id", promoH.Update)
	promos.Delete("/:id", promoH.Delete)

	users := staff.Group("/users", admin)
	users.Get("/", userH.List)
	users.Get("/:id", userH.Get)
	users.Post("/", userH.Create)
	users.Put("/:id", userH.Update)
	users.Delete("/:id", userH.Delete)

	// ==== WEBSOCKET ====
	if d.Hub != nil {
		showroomH := NewShowroomHandler(d.Loader, d.Hub, d.Log)
		app.Get("/ws/showroom/:kind", showroomH.Upgrade, websocket.New(showroomH.Serve))
	}
}
