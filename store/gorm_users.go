package store

import (
	"context"
	"errors"
	"strings"

	"food-catalog-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserStore keeps users in the users table
type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormUserStore) Save(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	tx := s.DB.WithContext(ctx)
	if u.Password == "" {
		tx = tx.Omit("password")
	}
	if err := tx.Save(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormUserStore) ListAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Omit("password").Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// translate maps driver errors onto the store sentinels
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicateEmail
	}
	return err
}

// isUniqueViolation catches drivers that don't implement gorm's error translator
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
