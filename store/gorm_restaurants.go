package store

import (
	"context"
	"errors"

	"food-catalog-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRestaurantStore keeps restaurants in one table; food items and tags are JSON columns
type GormRestaurantStore struct {
	DB *gorm.DB
}

func NewGormRestaurantStore(db *gorm.DB) *GormRestaurantStore {
	return &GormRestaurantStore{DB: db}
}

func (s *GormRestaurantStore) InsertMany(ctx context.Context, rs []models.Restaurant) ([]models.Restaurant, error) {
	out := make([]models.Restaurant, len(rs))
	for i, r := range rs {
		r.ID = uuid.NewString()
		out[i] = r
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormRestaurantStore) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *GormRestaurantStore) Insert(ctx context.Context, r *models.Restaurant) (*models.Restaurant, error) {
	rec := *r
	rec.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormRestaurantStore) Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&r).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		patch.Apply(&r)
		return tx.Save(&r).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *GormRestaurantStore) Delete(ctx context.Context, id string) (bool, error) {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Restaurant{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormRestaurantStore) FindPage(ctx context.Context, req PageRequest) ([]models.Restaurant, error) {
	if err := checkSortField(req.SortField); err != nil {
		return nil, err
	}
	rs := []models.Restaurant{}
	err := s.DB.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: req.SortField}, Desc: req.Direction == Descending}).
		Order("id").
		Offset(req.Skip).
		Limit(req.Limit).
		Find(&rs).Error
	return rs, err
}

func (s *GormRestaurantStore) FindAll(ctx context.Context) ([]models.Restaurant, error) {
	rs := []models.Restaurant{}
	err := s.DB.WithContext(ctx).Order("created_at asc").Find(&rs).Error
	return rs, err
}

func (s *GormRestaurantStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Restaurant{}).Count(&n).Error
	return n, err
}
