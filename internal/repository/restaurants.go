package repository

import (
	"context"

	"reservation_system/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantStore persists the restaurant catalog
type RestaurantStore struct {
	db *gorm.DB
}

// NewRestaurantStore creates a RestaurantStore
func NewRestaurantStore(db *gorm.DB) *RestaurantStore {
	return &RestaurantStore{db: db}
}

// Create inserts a restaurant
func (s *RestaurantStore) Create(ctx context.Context, r *domain.Restaurant) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// FindByID loads a restaurant by identifier
func (s *RestaurantStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	var r domain.Restaurant
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// List returns every restaurant in store order
func (s *RestaurantStore) List(ctx context.Context) ([]domain.Restaurant, error) {
	var rows []domain.Restaurant
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update overwrites every editable field of an existing restaurant
func (s *RestaurantStore) Update(ctx context.Context, r *domain.Restaurant) error {
	res := s.db.WithContext(ctx).Model(&domain.Restaurant{}).Where("id = ?", r.ID).
		Select("name", "address", "phone", "open_time", "close_time", "history", "picture", "discount_month", "updated_at").
		Updates(r)
	return res.Error // Caller checks existence; MySQL reports 0 rows for no-op updates
}

// Delete removes a restaurant; reservations referencing it are left untouched
func (s *RestaurantStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Restaurant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
