package store_test

import (
	"context"
	"testing"

	"food-catalog-api/config"
	"food-catalog-api/models"
	"food-catalog-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

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

func restaurant(title string, rating float64) models.Restaurant {
	return models.Restaurant{
		Title:       title,
		Description: title + " description",
		ImageURL:    "https://img.example.com/" + title + ".jpg",
		Rating:      rating,
		Category:    "North Indian Cuisine",
		Location:    "Delhi",
		Tags:        []string{},
		FoodItems:   []models.FoodItem{},
	}
}

func TestGormUserStore(t *testing.T) {
	ctx := context.Background()
	users := store.NewGormUserStore(newTestDB(t))

	created, err := users.Insert(ctx, &models.User{Name: "Ravi", Email: "ravi@example.com", Password: "hash", Role: models.RoleUser})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := users.FindByEmail(ctx, "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)

	_, err = users.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = users.Insert(ctx, &models.User{Name: "Other", Email: "ravi@example.com", Password: "x", Role: models.RoleUser})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	byEmail.Role = models.RoleAdmin
	_, err = users.Save(ctx, byEmail)
	require.NoError(t, err)

	reloaded, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)
	assert.Equal(t, "hash", reloaded.Password)

	all, err := users.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Password)
}

func TestGormUserStoreSaveKeepsPasswordWhenBlank(t *testing.T) {
	ctx := context.Background()
	users := store.NewGormUserStore(newTestDB(t))

	u, err := users.Insert(ctx, &models.User{Name: "Meera", Email: "meera@example.com", Password: "hash", Role: models.RoleUser})
	require.NoError(t, err)

	u.Password = ""
	u.Name = "Meera K"
	_, err = users.Save(ctx, u)
	require.NoError(t, err)

	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meera K", got.Name)
	assert.Equal(t, "hash", got.Password)
}

func TestGormRestaurantRoundTrip(t *testing.T) {
	ctx := context.Background()
	rs := store.NewGormRestaurantStore(newTestDB(t))

	in := restaurant("Bawarchi", 4.1)
	in.Tags = []string{"Spicy", "Veg & Non-Veg"}
	in.FoodItems = []models.FoodItem{
		{Name: "Mutton Biryani", Description: "Dum", ImageURL: "mb.jpg", Price: 380},
		{Name: "Double Ka Meetha", Description: "Dessert", ImageURL: "dkm.jpg", Price: 120},
	}
	created, err := rs.Insert(ctx, &in)
	require.NoError(t, err)

	got, err := rs.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Tags, got.Tags)
	assert.Equal(t, in.FoodItems, got.FoodItems)
	assert.Equal(t, 4.1, got.Rating)
}

func TestGormRestaurantUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	rs := store.NewGormRestaurantStore(newTestDB(t))

	in := restaurant("Karims", 3.9)
	created, err := rs.Insert(ctx, &in)
	require.NoError(t, err)

	rating := 4.6
	updated, err := rs.Update(ctx, created.ID, models.RestaurantPatch{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4.6, updated.Rating)
	assert.Equal(t, "Karims", updated.Title)

	unchanged, err := rs.Update(ctx, created.ID, models.RestaurantPatch{})
	require.NoError(t, err)
	assert.Equal(t, 4.6, unchanged.Rating)

	_, err = rs.Update(ctx, "missing", models.RestaurantPatch{Rating: &rating})
	assert.ErrorIs(t, err, store.ErrNotFound)

	ok, err := rs.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rs.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = rs.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormRestaurantPaging(t *testing.T) {
	ctx := context.Background()
	rs := store.NewGormRestaurantStore(newTestDB(t))

	batch := []models.Restaurant{
		restaurant("A", 3.0), restaurant("B", 4.5), restaurant("C", 1.2),
		restaurant("D", 5.0), restaurant("E", 0.0),
	}
	inserted, err := rs.InsertMany(ctx, batch)
	require.NoError(t, err)
	require.Len(t, inserted, 5)

	n, err := rs.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	asc, err := rs.FindPage(ctx, store.PageRequest{Skip: 0, Limit: 3, SortField: "rating", Direction: store.Ascending})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []float64{0.0, 1.2, 3.0}, ratings(asc))

	desc, err := rs.FindPage(ctx, store.PageRequest{Skip: 3, Limit: 3, SortField: "rating", Direction: store.Descending})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.2, 0.0}, ratings(desc))

	_, err = rs.FindPage(ctx, store.PageRequest{Limit: 3, SortField: "rating; DROP TABLE restaurants", Direction: store.Ascending})
	assert.Error(t, err)

	all, err := rs.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestGormInsertManyIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	rs := store.NewGormRestaurantStore(newTestDB(t))

	// the rating check constraint rejects the second record
	_, err := rs.InsertMany(ctx, []models.Restaurant{restaurant("Good", 4.0), restaurant("Bad", 9.0)})
	require.Error(t, err)

	n, err := rs.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func ratings(rs []models.Restaurant) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Rating
	}
	return out
}
