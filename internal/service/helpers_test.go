package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"reservation_system/internal/domain"
	"reservation_system/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedRand always picks the same index
type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

// stepClock advances one minute per call
func stepClock(start time.Time) Clock {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

// memCache is an in-memory utils.Cache that records hits
type memCache struct {
	data map[string][]byte
	hits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type testEnv struct {
	db           *gorm.DB
	users        *repository.UserStore
	restaurants  *repository.RestaurantStore
	reservations *repository.ReservationStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "service.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.Restaurant{}, &domain.Reservation{}))
	return &testEnv{
		db:           gdb,
		users:        repository.NewUserStore(gdb),
		restaurants:  repository.NewRestaurantStore(gdb),
		reservations: repository.NewReservationStore(gdb),
	}
}

func (e *testEnv) addUser(t *testing.T, name, role, birthday string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Name: name, Email: name + "@example.com", Password: string(hash), Role: role}
	if birthday != "" {
		b, err := time.Parse("2006-01-02", birthday)
		require.NoError(t, err)
		u.Birthday = &b
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) addRestaurant(t *testing.T, name string, discountMonth int) *domain.Restaurant {
	t.Helper()
	r := &domain.Restaurant{
		Name: name, Address: "1 Main St", Phone: "555-0100", OpenTime: "10:00 AM", CloseTime: "10:00 PM",
		History: "Family run since 1970.", Picture: "https://img.example.com/" + name + ".jpg", DiscountMonth: discountMonth,
	}
	require.NoError(t, e.restaurants.Create(context.Background(), r))
	return r
}

func principalOf(u *domain.User) domain.Principal {
	return domain.Principal{ID: u.ID, Role: u.Role}
}
