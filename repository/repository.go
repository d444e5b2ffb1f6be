// Package repository holds the persistence ports for menu, order and user
// data, with an in-memory implementation seeded with the demo dataset and
// a MongoDB implementation for real deployments.
package repository

import (
	"context"

	"github.com/pkg/errors"

	"quickbite/models"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("repository: not found")

// MenuRepository reads the menu.
type MenuRepository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error)
	Find(ctx context.Context, id int) (models.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderRepository stores placed orders. Create assigns the order id.
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Find(ctx context.Context, id int) (models.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// UserRepository looks up storefront accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}
