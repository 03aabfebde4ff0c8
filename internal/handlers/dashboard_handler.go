package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
)

// SessionCounter reports live showroom sessions per catalog.
type SessionCounter interface {
	Count() map[catalog.Kind]int
}

type DashboardHandler struct {
	Store    *store.Store
	Sessions SessionCounter
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// Summary returns entity totals, the latest users and orders, and live
// showroom sessions.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	ctx := c.UserContext()

	sources := map[string]counter{
		"vps":       h.Store.VPS,
		"dedicated": h.Store.Dedicated,
		"packages":  h.Store.Packages,
		"promos":    h.Store.Promos,
		"orders":    h.Store.Orders,
		"users":     h.Store.Users,
	}
	totals := make(map[string]int64, len(sources))
	results := make(chan struct {
		name string
		n    int64
	}, len(sources))

	recent := store.ListOptions{Limit: 5, SortBy: "created_at", SortOrder: "desc"}
	var users []models.User
	var orders []models.Order

	g, gctx := errgroup.WithContext(ctx)
	for name, src := range sources {
		name, src := name, src
		g.Go(func() error {
			n, err := src.Count(gctx)
			if err != nil {
				return err
			}
			results <- struct {
				name string
				n    int64
			}{name, n}
			return nil
		})
	}
	g.Go(func() (err error) {
		users, err = h.Store.Users.List(gctx, recent)
		return err
	})
	g.Go(func() (err error) {
		orders, err = h.Store.Orders.List(gctx, recent)
		return err
	})
	if err := g.Wait(); err != nil {
		return serverError(c, err, "Failed to load dashboard")
	}
	close(results)
	for r := range results {
		totals[r.name] = r.n
	}

	recentUsers := make([]fiber.Map, 0, len(users))
	for i := range users {
		recentUsers = append(recentUsers, adminUserJSON(&users[i]))
	}

	sessions := map[catalog.Kind]int{}
	if h.Sessions != nil {
		sessions = h.Sessions.Count()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"totals":       totals,
			"recentUsers":  recentUsers,
			"recentOrders": orders,
			"liveSessions": sessions,
		},
	})
}
