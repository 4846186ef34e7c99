package service

import (
	"context"
	"strings"
	"time"

	"reservation_system/internal/domain"
	"reservation_system/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const restaurantListKey = "restaurants:all"

func restaurantKey(id uuid.UUID) string { return "restaurants:id:" + id.String() }

// RestaurantInput carries every editable restaurant field
type RestaurantInput struct {
	Name          string
	Address       string
	Phone         string
	OpenTime      string
	CloseTime     string
	History       string
	Picture       string
	DiscountMonth int
}

func (in RestaurantInput) validate() error {
	for _, v := range []string{in.Name, in.Address, in.Phone, in.OpenTime, in.CloseTime, in.History, in.Picture} {
		if strings.TrimSpace(v) == "" {
			return domain.NewValidation("Missing required fields")
		}
	}
	if in.DiscountMonth == 0 {
		return domain.NewValidation("Missing required fields")
	}
	if in.DiscountMonth < 1 || in.DiscountMonth > 12 {
		return domain.NewValidation("discount_month must be between 1 and 12")
	}
	return nil
}

func (in RestaurantInput) applyTo(r *domain.Restaurant) {
	r.Name = strings.TrimSpace(in.Name)
	r.Address = strings.TrimSpace(in.Address)
	r.Phone = strings.TrimSpace(in.Phone)
	r.OpenTime = strings.TrimSpace(in.OpenTime)
	r.CloseTime = strings.TrimSpace(in.CloseTime)
	r.History = in.History
	r.Picture = strings.TrimSpace(in.Picture)
	r.DiscountMonth = in.DiscountMonth
}

// RestaurantService manages the restaurant catalog. Reads are cached and
// every admin write invalidates the affected keys.
type RestaurantService struct {
	restaurants RestaurantRepository
	cache       utils.Cache
	ttl         time.Duration
}

// NewRestaurantService creates a RestaurantService
func NewRestaurantService(restaurants RestaurantRepository, cache utils.Cache, ttl time.Duration) *RestaurantService {
	if cache == nil {
		cache = utils.NoopCache{}
	}
	return &RestaurantService{restaurants: restaurants, cache: cache, ttl: ttl}
}

// List returns every restaurant; order is whatever the store returns
func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	var cached []domain.Restaurant
	if found, err := s.cache.Get(ctx, restaurantListKey, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		logrus.WithError(err).Warn("Restaurant cache read failed")
	}
	rows, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, storageFailure("Error fetching restaurants", err, nil)
	}
	s.store(ctx, restaurantListKey, rows)
	return rows, nil
}

// Get returns one restaurant
func (s *RestaurantService) Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	var cached domain.Restaurant
	if found, err := s.cache.Get(ctx, restaurantKey(id), &cached); err == nil && found {
		return &cached, nil
	} else if err != nil {
		logrus.WithError(err).WithField("restaurant_id", id).Warn("Restaurant cache read failed")
	}
	r, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFound("Restaurant not found")
		}
		return nil, storageFailure("Error fetching restaurant", err, logrus.Fields{"restaurant_id": id})
	}
	s.store(ctx, restaurantKey(id), r)
	return r, nil
}

// Create adds a restaurant; admin only
func (s *RestaurantService) Create(ctx context.Context, p domain.Principal, in RestaurantInput) (*domain.Restaurant, error) {
	if !p.IsAdmin() {
		return nil, domain.NewForbidden("Unauthorized access")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	r := &domain.Restaurant{}
	in.applyTo(r)
	if err := s.restaurants.Create(ctx, r); err != nil {
		return nil, storageFailure("Error creating restaurant", err, logrus.Fields{"name": r.Name})
	}
	s.invalidate(ctx, r.ID)
	logrus.WithFields(logrus.Fields{"restaurant_id": r.ID, "name": r.Name, "created_by": p.ID}).Info("Restaurant created")
	return r, nil
}

// Update overwrites every field of a restaurant; admin only. Existing
// reservations keep their snapshot of the old name and picture.
func (s *RestaurantService) Update(ctx context.Context, p domain.Principal, id uuid.UUID, in RestaurantInput) (*domain.Restaurant, error) {
	if !p.IsAdmin() {
		return nil, domain.NewForbidden("Unauthorized access")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	r, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFound("Restaurant not found")
		}
		return nil, storageFailure("Error updating restaurant", err, logrus.Fields{"restaurant_id": id})
	}
	in.applyTo(r)
	r.UpdatedAt = time.Now().UTC()
	if err := s.restaurants.Update(ctx, r); err != nil {
		return nil, storageFailure("Error updating restaurant", err, logrus.Fields{"restaurant_id": id})
	}
	s.invalidate(ctx, id)
	logrus.WithFields(logrus.Fields{"restaurant_id": id, "updated_by": p.ID}).Info("Restaurant updated")
	return r, nil
}

// Delete removes a restaurant; admin only. Reservations are not cascaded.
func (s *RestaurantService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return domain.NewForbidden("Unauthorized access")
	}
	if err := s.restaurants.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return domain.NewNotFound("Restaurant not found")
		}
		return storageFailure("Error deleting restaurant", err, logrus.Fields{"restaurant_id": id})
	}
	s.invalidate(ctx, id)
	logrus.WithFields(logrus.Fields{"restaurant_id": id, "deleted_by": p.ID}).Info("Restaurant deleted")
	return nil
}

func (s *RestaurantService) store(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Restaurant cache write failed")
	}
}

func (s *RestaurantService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, restaurantListKey, restaurantKey(id)); err != nil {
		logrus.WithError(err).WithField("restaurant_id", id).Warn("Restaurant cache invalidation failed")
	}
}
