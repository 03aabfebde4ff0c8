package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
)

// Compile-time interface checks.
var (
	_ store.CRUD[models.VPS]  = (*MemCRUD[models.VPS])(nil)
	_ store.UserRepository    = (*MemUsers)(nil)
	_ store.PackageRepository = (*MemPackages)(nil)
)

// MemCRUD is a thread-safe in-memory repository for handler tests.
type MemCRUD[T any] struct {
	mu     sync.Mutex
	items  []T
	nextID uint

	idOf   func(*T) string
	assign func(*T, uint)

	// Filter, when set, applies ListOptions.Where.
	Filter func(T, map[string]any) bool
	// Err, when set, is returned by every call.
	Err error
}

func NewMemCRUD[T any](idOf func(*T) string, assign func(*T, uint)) *MemCRUD[T] {
	return &MemCRUD[T]{idOf: idOf, assign: assign}
}

func (m *MemCRUD[T]) List(_ context.Context, opts store.ListOptions) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]T, 0, len(m.items))
	for _, it := range m.items {
		if m.Filter != nil && len(opts.Where) > 0 && !m.Filter(it, opts.Where) {
			continue
		}
		out = append(out, it)
	}
	if opts.Offset > 0 {
		out = out[min(opts.Offset, len(out)):]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *MemCRUD[T]) Get(_ context.Context, id any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	key := fmt.Sprint(id)
	for i := range m.items {
		if m.idOf(&m.items[i]) == key {
			v := m.items[i]
			return &v, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemCRUD[T]) Create(_ context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	m.assign(v, m.nextID)
	m.items = append(m.items, *v)
	return nil
}

func (m *MemCRUD[T]) Save(_ context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	key := m.idOf(v)
	for i := range m.items {
		if m.idOf(&m.items[i]) == key {
			m.items[i] = *v
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemCRUD[T]) Delete(_ context.Context, id any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	key := fmt.Sprint(id)
	for i := range m.items {
		if m.idOf(&m.items[i]) == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemCRUD[T]) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), m.Err
}

func (m *MemCRUD[T]) CountWhere(_ context.Context, where map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, it := range m.items {
		if m.Filter != nil && len(where) > 0 && !m.Filter(it, where) {
			continue
		}
		n++
	}
	return n, nil
}

// Seed inserts items as-is, assigning ids.
func (m *MemCRUD[T]) Seed(items ...T) *MemCRUD[T] {
	for i := range items {
		_ = m.Create(context.Background(), &items[i])
	}
	return m
}

type MemUsers struct {
	*MemCRUD[models.User]
}

func (m *MemUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	all, _ := m.List(ctx, store.ListOptions{})
	for i := range all {
		if all[i].Email == email {
			return &all[i], nil
		}
	}
	return nil, store.ErrNotFound
}

type MemPackages struct {
	*MemCRUD[models.Package]
	items *MemCRUD[models.PackageItem]
}

func (m *MemPackages) Items(ctx context.Context, packageID uint) ([]models.PackageItem, error) {
	all, _ := m.items.List(ctx, store.ListOptions{})
	out := []models.PackageItem{}
	for _, it := range all {
		if it.PackageID == packageID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *MemPackages) AddItem(ctx context.Context, item *models.PackageItem) error {
	if _, err := m.Get(ctx, item.PackageID); err != nil {
		return err
	}
	return m.items.Create(ctx, item)
}

func (m *MemPackages) DeleteItem(ctx context.Context, id uint) error {
	return m.items.Delete(ctx, id)
}

func uintID(id uint) string { return fmt.Sprint(id) }

// NewStore returns a Store backed entirely by memory.
func NewStore() *store.Store {
	return &store.Store{
		VPS: NewMemCRUD(func(v *models.VPS) string { return uintID(v.ID) },
			func(v *models.VPS, id uint) { v.ID = id }),
		Dedicated: NewMemCRUD(func(v *models.Dedicated) string { return uintID(v.ID) },
			func(v *models.Dedicated, id uint) { v.ID = id }),
		Packages: &MemPackages{
			MemCRUD: NewMemCRUD(func(v *models.Package) string { return uintID(v.ID) },
				func(v *models.Package, id uint) { v.ID = id }),
			items: NewMemCRUD(func(v *models.PackageItem) string { return uintID(v.ID) },
				func(v *models.PackageItem, id uint) { v.ID = id }),
		},
		Promos: &MemCRUD[models.Promo]{
			idOf:   func(v *models.Promo) string { return uintID(v.ID) },
			assign: func(v *models.Promo, id uint) { v.ID = id },
			Filter: func(p models.Promo, where map[string]any) bool {
				active, ok := where["is_active"].(bool)
				return !ok || p.IsActive == active
			},
		},
		Orders: &MemCRUD[models.Order]{
			idOf:   func(v *models.Order) string { return uintID(v.ID) },
			assign: func(v *models.Order, id uint) { v.ID = id },
			Filter: func(o models.Order, where map[string]any) bool {
				status, ok := where["status"]
				return !ok || fmt.Sprint(status) == string(o.Status)
			},
		},
		Users: &MemUsers{MemCRUD: NewMemCRUD(func(v *models.User) string { return v.ID.String() },
			func(v *models.User, _ uint) {
				if v.ID == uuid.Nil {
					v.ID = uuid.New()
				}
			})},
	}
}
