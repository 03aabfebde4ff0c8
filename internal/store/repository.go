// Package store provides gorm-backed repositories for the storefront entities.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListOptions controls pagination, sorting and simple equality filters.
type ListOptions struct {
	Limit     int            // Max results (default 50, max 500).
	Offset    int            // Results to skip.
	SortBy    string         // Column name; must be in the repository's allow list.
	SortOrder string         // "asc" or "desc" (default "desc").
	Where     map[string]any // Column equality filters.
}

// MaxPageSize is the largest page List returns.
const MaxPageSize = 500

// Sentinel errors returned by repositories.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

func normalizeListOptions(opts ListOptions, sortable map[string]bool) ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Limit > MaxPageSize {
		opts.Limit = MaxPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if !sortable[opts.SortBy] {
		opts.SortBy = "id"
	}
	if strings.ToLower(opts.SortOrder) != "asc" {
		opts.SortOrder = "desc"
	} else {
		opts.SortOrder = "asc"
	}
	return opts
}

// CRUD is the common repository surface.
type CRUD[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id any) (*T, error)
	Create(ctx context.Context, v *T) error
	Save(ctx context.Context, v *T) error
	Delete(ctx context.Context, id any) error
	Count(ctx context.Context) (int64, error)
	CountWhere(ctx context.Context, where map[string]any) (int64, error)
}

// ListAll pages through every row matching where, in id order.
func ListAll[T any](ctx context.Context, r CRUD[T], where map[string]any) ([]T, error) {
	out := make([]T, 0)
	for {
		page, err := r.List(ctx, ListOptions{
			Limit:     MaxPageSize,
			Offset:    len(out),
			SortBy:    "id",
			SortOrder: "asc",
			Where:     where,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < MaxPageSize {
			return out, nil
		}
	}
}

// Repository implements CRUD over a gorm table.
type Repository[T any] struct {
	DB       *gorm.DB
	sortable map[string]bool
	preload  []string
}

func NewRepository[T any](db *gorm.DB, sortable ...string) *Repository[T] {
	allowed := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, c := range sortable {
		allowed[c] = true
	}
	return &Repository[T]{DB: db, sortable: allowed}
}

// WithPreload makes Get and List eager load the named associations.
func (r *Repository[T]) WithPreload(assoc ...string) *Repository[T] {
	r.preload = append(r.preload, assoc...)
	return r
}

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	q := r.DB.WithContext(ctx)
	for _, a := range r.preload {
		q = q.Preload(a)
	}
	return q
}

func (r *Repository[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	opts = normalizeListOptions(opts, r.sortable)

	q := r.query(ctx)
	for col, val := range opts.Where {
		q = q.Where(map[string]any{col: val})
	}

	var out []T
	err := q.Order(opts.SortBy + " " + opts.SortOrder).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return out, nil
}

func (r *Repository[T]) Get(ctx context.Context, id any) (*T, error) {
	var v T
	if err := r.query(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %v: %w", id, err)
	}
	return &v, nil
}

func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	if err := r.DB.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

func (r *Repository[T]) Save(ctx context.Context, v *T) error {
	if err := r.DB.WithContext(ctx).Save(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	res := r.DB.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %v: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// CountWhere counts rows matching the same equality filters List accepts.
func (r *Repository[T]) CountWhere(ctx context.Context, where map[string]any) (int64, error) {
	q := r.DB.WithContext(ctx).Model(new(T))
	for col, val := range where {
		q = q.Where(map[string]any{col: val})
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
