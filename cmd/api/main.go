package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/config"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/db"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/logger"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/uploads"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	lg, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Connect(cfg.DBDSN, lg)
	if err != nil {
		lg.WithError(err).Fatal("database connect failed")
	}
	if err := db.Migrate(gdb); err != nil {
		lg.WithError(err).Fatal("database migrate failed")
	}
	st := store.New(gdb)

	// redis is optional: without it rate limits and catalog events stay in process
	var (
		rdb     *redis.Client
		limiter middleware.RateStore = middleware.NewMemoryRateStore()
	)
	if cfg.RedisAddr != "" {
		rdb = realtime.NewRedis(cfg, lg)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			lg.WithError(err).Warn("redis unreachable, using in-process rate limits and events")
			_ = rdb.Close()
			rdb = nil
		} else {
			limiter = middleware.NewRedisRateStore(rdb)
		}
	}

	hub := realtime.NewHub(lg)
	go hub.Run(ctx)
	bus := realtime.NewBus(rdb, hub, lg)
	go bus.Listen(ctx)

	files, err := uploads.New(cfg)
	if err != nil {
		lg.WithError(err).Fatal("upload storage")
	}

	loader := catalog.NewLoader(cfg.CatalogFetchTimeout).
		Register(catalog.KindVPS, st.CatalogSource(catalog.KindVPS)).
		Register(catalog.KindDedicated, st.CatalogSource(catalog.KindDedicated))

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: "requestid"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length, Content-Disposition, X-RateLimit-Remaining",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Static("/uploads", cfg.UploadDir)

	handlers.Routes(app, handlers.Deps{
		Config:  cfg,
		Store:   st,
		Loader:  loader,
		Hub:     hub,
		Bus:     bus,
		Uploads: files,
		Limiter: limiter,
		Log:     lg,
	})

	go func() {
		<-ctx.Done()
		lg.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			lg.WithError(err).Error("shutdown")
		}
	}()

	lg.WithField("port", cfg.AppPort).Info("listening")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		lg.WithError(err).Fatal("server stopped")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
