package services

import (
	"context"
	"errors"
	"math"

	"food-catalog-api/apperr"
	"food-catalog-api/models"
	"food-catalog-api/store"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 6
	MaxPageSize     = 100
)

const msgRestaurantNotFound = "Restaurant not found"

// CatalogService manages restaurant records and their embedded food items
type CatalogService struct {
	restaurants store.RestaurantStore
}

func NewCatalogService(restaurants store.RestaurantStore) *CatalogService {
	return &CatalogService{restaurants: restaurants}
}

// BulkAdd validates the whole batch before writing any of it
func (s *CatalogService) BulkAdd(ctx context.Context, in []models.RestaurantInput) ([]models.Restaurant, error) {
	if errs := models.ValidateBatch(in); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}
	rs := make([]models.Restaurant, len(in))
	for i, r := range in {
		rs[i] = r.Restaurant()
	}
	out, err := s.restaurants.InsertMany(ctx, rs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *CatalogService) Create(ctx context.Context, in models.RestaurantInput) (*models.Restaurant, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}
	r := in.Restaurant()
	out, err := s.restaurants.Insert(ctx, &r)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	r, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return r, nil
}

// Update merges the supplied fields into the record. Only those fields are validated.
func (s *CatalogService) Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error) {
	if errs := patch.Validate(); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}
	r, err := s.restaurants.Update(ctx, id, patch)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return r, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	deleted, err := s.restaurants.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !deleted {
		return apperr.NotFound(msgRestaurantNotFound)
	}
	return nil
}

// ListAll returns the unpaginated catalog for back-office use
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Restaurant, error) {
	rs, err := s.restaurants.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return rs, nil
}

// ListPage returns one page sorted by rating (descending unless sort is "asc").
// Totals always describe the whole collection.
func (s *CatalogService) ListPage(ctx context.Context, q models.PageQuery) (*models.Page, error) {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageSize
	}
	var errs []apperr.FieldError
	if q.Page < 1 {
		errs = append(errs, apperr.FieldError{Field: "page", Message: "page must be at least 1"})
	}
	if q.Limit < 1 || q.Limit > MaxPageSize {
		errs = append(errs, apperr.FieldError{Field: "limit", Message: "limit must be between 1 and 100"})
	} else if q.Page-1 > math.MaxInt/q.Limit {
		// (page-1)*limit would overflow the skip
		errs = append(errs, apperr.FieldError{Field: "page", Message: "page is too large"})
	}
	if len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	dir := store.Descending
	if q.Sort == "asc" {
		dir = store.Ascending
	}

	total, err := s.restaurants.Count(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	rs, err := s.restaurants.FindPage(ctx, store.PageRequest{
		Skip:      (q.Page - 1) * q.Limit,
		Limit:     q.Limit,
		SortField: "rating",
		Direction: dir,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &models.Page{
		Success:     true,
		Restaurants: rs,
		TotalCount:  total,
		TotalPages:  (total + int64(q.Limit) - 1) / int64(q.Limit),
		CurrentPage: q.Page,
	}, nil
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(msgRestaurantNotFound)
	}
	return apperr.Internal(err)
}
