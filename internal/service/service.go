// Package service implements the user directory, restaurant catalog and
// reservation ledger operations. Every operation that depends on who is
// calling takes an explicit domain.Principal.
package service

import (
	"context"
	"errors"
	"time"

	"reservation_system/internal/domain"
	"reservation_system/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UserRepository is the user storage the services depend on
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	NamesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ListSummaries(ctx context.Context) ([]domain.UserSummary, error)
}

// RestaurantRepository is the restaurant catalog storage
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
	Update(ctx context.Context, r *domain.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReservationRepository is the reservation ledger storage
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Save(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
}

// Clock returns the current time
type Clock func() time.Time

// isNotFound reports whether a repository error means "no such row"
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// storageFailure logs err with its operation context and hides it behind msg
func storageFailure(msg string, err error, fields logrus.Fields) error {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["error"] = err.Error()
	logrus.WithFields(fields).Error(msg)
	return domain.NewInternal(msg, err)
}
