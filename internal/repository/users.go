package repository

import (
	"context"

	"reservation_system/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStore persists user accounts
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

// FindByID loads a user by identifier
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// FindByEmail loads a user by (normalized) email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// NamesByID returns display names for the given users; missing users are absent from the map
func (s *UserStore) NamesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []domain.User
	if err := s.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		names[u.ID] = u.Name
	}
	return names, nil
}

// ListSummaries returns the directory projection of every user, sorted by name
func (s *UserStore) ListSummaries(ctx context.Context) ([]domain.UserSummary, error) {
	var rows []domain.User
	if err := s.db.WithContext(ctx).Select("id", "name", "email", "birthday").Order("name asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.UserSummary, len(rows))
	for i, u := range rows {
		out[i] = domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Birthday: u.Birthday}
	}
	return out, nil
}
