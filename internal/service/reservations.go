package service

import (
	"context"
	"strconv"
	"time"

	"reservation_system/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReservationInput carries the caller-supplied fields of a reservation
type ReservationInput struct {
	UserID          uuid.UUID
	RestaurantID    uuid.UUID
	ReservationDate time.Time
	People          int
}

func (in ReservationInput) validate() error {
	if in.UserID == uuid.Nil || in.RestaurantID == uuid.Nil || in.ReservationDate.IsZero() || in.People == 0 {
		return domain.NewValidation("Missing required fields")
	}
	if in.People < domain.MinPeople || in.People > domain.MaxPeople {
		return domain.NewValidation("People must be between " + strconv.Itoa(domain.MinPeople) + " and " + strconv.Itoa(domain.MaxPeople))
	}
	return nil
}

// ReservationService manages the reservation lifecycle and the birthday discount
type ReservationService struct {
	reservations ReservationRepository
	restaurants  RestaurantRepository
	users        UserRepository
	rnd          domain.Randomizer
	now          Clock
}

// NewReservationService creates a ReservationService. rnd picks birthday discounts.
func NewReservationService(reservations ReservationRepository, restaurants RestaurantRepository, users UserRepository, rnd domain.Randomizer, now Clock) *ReservationService {
	if now == nil {
		now = time.Now
	}
	return &ReservationService{reservations: reservations, restaurants: restaurants, users: users, rnd: rnd, now: now}
}

// Create books a reservation, snapshotting the restaurant's name and picture
// and fixing the discount for the life of the reservation.
func (s *ReservationService) Create(ctx context.Context, p domain.Principal, in ReservationInput) (*domain.Reservation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !p.CanAccess(in.UserID) {
		return nil, domain.NewForbidden("Cannot create reservations for another user")
	}
	restaurant, err := s.loadRestaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	// A missing owner only forfeits the discount
	owner, err := s.users.FindByID(ctx, in.UserID)
	if err != nil && !isNotFound(err) {
		return nil, storageFailure("Failed to create reservation", err, logrus.Fields{"user_id": in.UserID})
	}

	res := &domain.Reservation{
		UserID:            in.UserID,
		RestaurantID:      restaurant.ID,
		RestaurantName:    restaurant.Name,
		RestaurantPicture: restaurant.Picture,
		ReservationDate:   in.ReservationDate,
		People:            in.People,
		Discount:          domain.BirthdayDiscount(owner, restaurant, s.rnd),
		CreatedAt:         s.now().UTC(),
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, storageFailure("Failed to create reservation", err, logrus.Fields{"user_id": in.UserID, "restaurant_id": in.RestaurantID})
	}
	logrus.WithFields(logrus.Fields{
		"reservation_id": res.ID,
		"user_id":        res.UserID,
		"restaurant_id":  res.RestaurantID,
		"people":         res.People,
		"discount":       res.Discount,
	}).Info("Reservation created")
	return res, nil
}

// Get returns a single reservation visible to the caller
func (s *ReservationService) Get(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Reservation, error) {
	res, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(res.UserID) {
		return nil, domain.NewForbidden("Unauthorized access")
	}
	return res, nil
}

// Update edits owner, restaurant, date and party size. The restaurant snapshot
// is refreshed from the current restaurant; the discount is never recomputed.
func (s *ReservationService) Update(ctx context.Context, p domain.Principal, id uuid.UUID, in ReservationInput) (*domain.Reservation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(existing.UserID) || !p.CanAccess(in.UserID) {
		return nil, domain.NewForbidden("Unauthorized access")
	}
	restaurant, err := s.loadRestaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	existing.UserID = in.UserID
	existing.RestaurantID = restaurant.ID
	existing.RestaurantName = restaurant.Name
	existing.RestaurantPicture = restaurant.Picture
	existing.ReservationDate = in.ReservationDate
	existing.People = in.People
	existing.UpdatedAt = &now
	if err := s.reservations.Save(ctx, existing); err != nil {
		return nil, storageFailure("Failed to update reservation", err, logrus.Fields{"reservation_id": id})
	}
	logrus.WithFields(logrus.Fields{
		"reservation_id": existing.ID,
		"user_id":        existing.UserID,
		"restaurant_id":  existing.RestaurantID,
		"people":         existing.People,
		"updated_by":     p.ID,
	}).Info("Reservation updated")
	return existing, nil
}

// Delete removes a reservation owned by the caller (or any, for admins)
func (s *ReservationService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	existing, err := s.loadReservation(ctx, id)
	if err != nil {
		return err
	}
	if !p.CanAccess(existing.UserID) {
		return domain.NewForbidden("Unauthorized access")
	}
	if err := s.reservations.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return domain.NewNotFound("Reservation not found")
		}
		return storageFailure("Failed to delete reservation", err, logrus.Fields{"reservation_id": id})
	}
	logrus.WithFields(logrus.Fields{"reservation_id": id, "deleted_by": p.ID}).Info("Reservation deleted")
	return nil
}

// ListByOwner returns ownerID's reservations, newest first. Admin callers get
// the owner's name attached to every row.
func (s *ReservationService) ListByOwner(ctx context.Context, p domain.Principal, ownerID uuid.UUID) ([]domain.ReservationView, error) {
	if !p.CanAccess(ownerID) {
		return nil, domain.NewForbidden("Unauthorized access")
	}
	rows, err := s.reservations.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, storageFailure("Failed to fetch user reservations", err, logrus.Fields{"user_id": ownerID})
	}
	userName := ""
	if p.IsAdmin() {
		userName = domain.UnknownOwnerName
		owner, err := s.users.FindByID(ctx, ownerID)
		switch {
		case err == nil:
			userName = owner.Name
		case !isNotFound(err):
			return nil, storageFailure("Failed to fetch user reservations", err, logrus.Fields{"user_id": ownerID})
		}
	}
	views := make([]domain.ReservationView, len(rows))
	for i, r := range rows {
		views[i] = domain.ReservationView{Reservation: r, UserName: userName}
	}
	return views, nil
}

// ListAll returns every reservation with its owner's name; admin only
func (s *ReservationService) ListAll(ctx context.Context, p domain.Principal) ([]domain.ReservationView, error) {
	if !p.IsAdmin() {
		return nil, domain.NewForbidden("Unauthorized access")
	}
	rows, err := s.reservations.List(ctx)
	if err != nil {
		return nil, storageFailure("Failed to fetch reservations", err, nil)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	names, err := s.users.NamesByID(ctx, ids)
	if err != nil {
		return nil, storageFailure("Failed to fetch reservations", err, nil)
	}
	views := make([]domain.ReservationView, len(rows))
	for i, r := range rows {
		name, ok := names[r.UserID]
		if !ok {
			name = domain.UnknownOwnerName
		}
		views[i] = domain.ReservationView{Reservation: r, UserName: name}
	}
	return views, nil
}

func (s *ReservationService) loadReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFound("Reservation not found")
		}
		return nil, storageFailure("Failed to fetch reservation", err, logrus.Fields{"reservation_id": id})
	}
	return res, nil
}

func (s *ReservationService) loadRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	r, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFound("Restaurant not found")
		}
		return nil, storageFailure("Failed to fetch restaurant", err, logrus.Fields{"restaurant_id": id})
	}
	return r, nil
}
