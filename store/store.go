// Package store persists users and catalog records. Two backends implement the
// same contracts: GORM (SQLite or Postgres) and MongoDB.
package store

import (
	"context"
	"errors"

	"food-catalog-api/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore holds credentials. Lookups are exact-match only.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	// ListAll returns every user with the password hash blanked
	ListAll(ctx context.Context) ([]models.User, error)
}

// RestaurantStore holds catalog records with their embedded food items.
type RestaurantStore interface {
	// InsertMany writes all records or none of them
	InsertMany(ctx context.Context, rs []models.Restaurant) ([]models.Restaurant, error)
	FindByID(ctx context.Context, id string) (*models.Restaurant, error)
	Insert(ctx context.Context, r *models.Restaurant) (*models.Restaurant, error)
	Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindPage(ctx context.Context, req PageRequest) ([]models.Restaurant, error)
	FindAll(ctx context.Context) ([]models.Restaurant, error)
	Count(ctx context.Context) (int64, error)
}

type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

type PageRequest struct {
	Skip      int
	Limit     int
	SortField string
	Direction SortDirection
}

// sortable lists the fields FindPage accepts; both backends use the same column names
var sortable = map[string]bool{
	"rating":     true,
	"title":      true,
	"created_at": true,
}

func checkSortField(field string) error {
	if !sortable[field] {
		return errors.New("unsupported sort field: " + field)
	}
	return nil
}
