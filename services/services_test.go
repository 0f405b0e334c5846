package services_test

import (
	"testing"

	"food-catalog-api/config"
	"food-catalog-api/services"
	"food-catalog-api/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newAuth(t *testing.T, opts ...services.AuthOption) (*services.AuthService, *store.GormUserStore) {
	t.Helper()
	users := store.NewGormUserStore(newTestDB(t))
	opts = append([]services.AuthOption{services.WithBcryptCost(bcrypt.MinCost)}, opts...)
	return services.NewAuthService(users, testSecret, opts...), users
}

func newCatalog(t *testing.T) *services.CatalogService {
	t.Helper()
	return services.NewCatalogService(store.NewGormRestaurantStore(newTestDB(t)))
}

func ptr[T any](v T) *T { return &v }
