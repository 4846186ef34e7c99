package repository

import (
	"context"

	"reservation_system/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStore persists reservations
type ReservationStore struct {
	db *gorm.DB
}

// NewReservationStore creates a ReservationStore
func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

// Create inserts a reservation
func (s *ReservationStore) Create(ctx context.Context, r *domain.Reservation) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// FindByID loads a reservation by identifier
func (s *ReservationStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	var r domain.Reservation
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// Save overwrites a stored reservation (last write wins)
func (s *ReservationStore) Save(ctx context.Context, r *domain.Reservation) error {
	res := s.db.WithContext(ctx).Model(&domain.Reservation{}).Where("id = ?", r.ID).
		Select("user_id", "restaurant_id", "restaurant_name", "restaurant_picture",
			"reservation_date", "people", "discount", "updated_at").
		Updates(r)
	return res.Error // Caller checks existence; MySQL reports 0 rows for no-op updates
}

// Delete removes a reservation
func (s *ReservationStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reservation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns a user's reservations, newest first
func (s *ReservationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error) {
	var rows []domain.Reservation
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns every reservation in store order
func (s *ReservationStore) List(ctx context.Context) ([]domain.Reservation, error) {
	var rows []domain.Reservation
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
