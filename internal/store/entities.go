package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
)

type UserRepository interface {
	CRUD[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type PackageRepository interface {
	CRUD[models.Package]
	Items(ctx context.Context, packageID uint) ([]models.PackageItem, error)
	AddItem(ctx context.Context, item *models.PackageItem) error
	DeleteItem(ctx context.Context, id uint) error
}

// Store groups every repository the handlers need.
type Store struct {
	VPS       CRUD[models.VPS]
	Dedicated CRUD[models.Dedicated]
	Packages  PackageRepository
	Promos    CRUD[models.Promo]
	Orders    CRUD[models.Order]
	Users     UserRepository
}

func New(db *gorm.DB) *Store {
	return &Store{
		VPS:       NewRepository[models.VPS](db, "price", "cores", "ram_gb"),
		Dedicated: NewRepository[models.Dedicated](db, "price", "cores", "ram_gb"),
		Packages:  &packageRepo{Repository: NewRepository[models.Package](db, "total_price").WithPreload("Items")},
		Promos:    NewRepository[models.Promo](db, "title"),
		Orders:    NewRepository[models.Order](db, "status", "price"),
		Users:     &userRepo{Repository: NewRepository[models.User](db, "name", "email")},
	}
}

// CatalogSource exposes a product table to the catalog loader. Rows are
// handed over in their JSON shape and go through the normalizer like any
// other feed.
func (s *Store) CatalogSource(kind catalog.Kind) catalog.Source {
	return catalog.SourceFunc(func(ctx context.Context) (any, error) {
		if kind == catalog.KindDedicated {
			rows, err := ListAll(ctx, s.Dedicated, nil)
			if err != nil {
				return nil, err
			}
			return catalog.AsBody(rows)
		}
		rows, err := ListAll(ctx, s.VPS, nil)
		if err != nil {
			return nil, err
		}
		return catalog.AsBody(rows)
	})
}

type userRepo struct {
	*Repository[models.User]
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

type packageRepo struct {
	*Repository[models.Package]
}

func (r *packageRepo) Items(ctx context.Context, packageID uint) ([]models.PackageItem, error) {
	var items []models.PackageItem
	err := r.DB.WithContext(ctx).
		Preload("VPS").
		Preload("Dedicated").
		Where("package_id = ?", packageID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("package items: %w", err)
	}
	return items, nil
}

func (r *packageRepo) AddItem(ctx context.Context, item *models.PackageItem) error {
	if _, err := r.Get(ctx, item.PackageID); err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("add package item: %w", err)
	}
	return nil
}

func (r *packageRepo) DeleteItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.PackageItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete package item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
