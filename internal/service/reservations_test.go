package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"reservation_system/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newReservationService(e *testEnv, rnd domain.Randomizer) *ReservationService {
	return NewReservationService(e.reservations, e.restaurants, e.users, rnd, stepClock(start))
}

func TestCreateAppliesBirthdayDiscount(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.addUser(t, "march", domain.RoleUser, "1990-03-15")
	march := e.addRestaurant(t, "march-house", 3)
	july := e.addRestaurant(t, "july-house", 7)
	svc := newReservationService(e, fixedRand(3))
	when := time.Date(2031, 11, 20, 19, 30, 0, 0, time.UTC)

	matched, err := svc.Create(ctx, principalOf(user), ReservationInput{UserID: user.ID, RestaurantID: march.ID, ReservationDate: when, People: 4})
	require.NoError(t, err)
	assert.Equal(t, "20%", matched.Discount)
	assert.Contains(t, []string{"5%", "10%", "15%", "20%", "25%", "30%"}, matched.Discount)

	other, err := svc.Create(ctx, principalOf(user), ReservationInput{UserID: user.ID, RestaurantID: july.ID, ReservationDate: when, People: 4})
	require.NoError(t, err)
	assert.Equal(t, "0%", other.Discount)
}

func TestConcurrentCreatesShareRandomizer(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // SQLite allows a single writer
	user := e.addUser(t, "march", domain.RoleUser, "1990-03-15")
	march := e.addRestaurant(t, "march-house", 3)
	rnd := domain.NewLockedRandomizer(rand.New(rand.NewPCG(7, 11)))
	svc := NewReservationService(e.reservations, e.restaurants, e.users, rnd, time.Now)
	when := time.Date(2031, 11, 20, 19, 30, 0, 0, time.UTC)

	const workers = 8
	discounts := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Create(ctx, principalOf(user), ReservationInput{UserID: user.ID, RestaurantID: march.ID, ReservationDate: when, People: 2})
			errs[i] = err
			if err == nil {
				discounts[i] = res.Discount
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Contains(t, []string{"5%", "10%", "15%", "20%", "25%", "30%"}, discounts[i])
	}
	rows, err := e.reservations.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, rows, workers)
}

func TestCreateWithoutBirthdayOrOwnerGetsNoDiscount(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	admin := e.addUser(t, "admin", domain.RoleAdmin, "")
	plain := e.addUser(t, "plain", domain.RoleUser, "")
	r := e.addRestaurant(t, "any", 1)
	svc := newReservationService(e, fixedRand(0))
	when := start.Add(48 * time.Hour)

	res, err := svc.Create(ctx, principalOf(plain), ReservationInput{UserID: plain.ID, RestaurantID: r.ID, ReservationDate: when, People: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.NoDiscount, res.Discount)

	// Admins may book for a user id that no longer exists; only the discount is lost
	ghost, err := svc.Create(ctx, principalOf(admin), ReservationInput{UserID: uuid.New(), RestaurantID: r.ID, ReservationDate: when, People: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.NoDiscount, ghost.Discount)
}

func TestCreateSnapshotsRestaurantAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.addUser(t, "snap", domain.RoleUser, "")
	r := e.addRestaurant(t, "original", 5)
	svc := newReservationService(e, fixedRand(0))
	when := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	created, err := svc.Create(ctx, principalOf(user), ReservationInput{UserID: user.ID, RestaurantID: r.ID, ReservationDate: when, People: 3})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "original", created.RestaurantName)
	assert.Equal(t, r.Picture, created.RestaurantPicture)
	assert.Nil(t, created.UpdatedAt)

	// Restaurant edits do not reach existing reservations
	require.NoError(t, e.db.Model(r).Update("name", "renamed").Error)

	got, err := svc.Get(ctx, principalOf(user), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.UserID, got.UserID)
	assert.Equal(t, created.RestaurantID, got.RestaurantID)
	assert.Equal(t, "original", got.RestaurantName)
	assert.Equal(t, created.RestaurantPicture, got.RestaurantPicture)
	assert.True(t, when.Equal(got.ReservationDate))
	assert.Equal(t, 3, got.People)
	assert.Equal(t, created.Discount, got.Discount)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.addUser(t, "val", domain.RoleUser, "")
	r := e.addRestaurant(t, "val-house", 2)
	svc := newReservationService(e, fixedRand(0))
	p := principalOf(user)
	when := start.Add(time.Hour)

	tests := []struct {
		name string
		in   ReservationInput
		kind domain.ErrorKind
	}{
		{"missing user", ReservationInput{RestaurantID: r.ID, ReservationDate: when, People: 2}, domain.KindValidation},
		{"missing restaurant", ReservationInput{UserID: user.ID, ReservationDate: when, People: 2}, domain.KindValidation},
		{"missing date", ReservationInput{UserID: user.ID, RestaurantID: r.ID, People: 2}, domain.KindValidation},
		{"missing people", ReservationInput{UserID: user.ID, RestaurantID: r.ID, ReservationDate: when}, domain.KindValidation},
		{"party of 16", ReservationInput{UserID: user.ID, RestaurantID: r.ID, ReservationDate: when, People: 16}, domain.KindValidation},
		{"negative party", ReservationInput{UserID: user.ID, RestaurantID: r.ID, ReservationDate: when, People: -1}, domain.KindValidation},
		{"unknown restaurant", ReservationInput{UserID: user.ID, RestaurantID: uuid.New(), ReservationDate: when, People: 2}, domain.KindNotFound},
		{"someone else", ReservationInput{UserID: uuid.New(), RestaurantID: r.ID, ReservationDate: when, People: 2}, domain.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, p, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}

	var count int64
	require.NoError(t, e.db.Model(&domain.Reservation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateAcceptsPartyBounds(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.addUser(t, "bounds", domain.RoleUser, "")
	r := e.addRestaurant(t, "bounds-house", 2)
	svc := newReservationService(e, fixedRand(0))

	for _, n := range []int{domain.MinPeople, domain.MaxPeople} {
		_, err := svc.Create(ctx, principalOf(user), ReservationInput{UserID: user.ID, RestaurantID: r.ID, ReservationDate: start, People: n})
		assert.NoError(t, err, n)
	}
}

func TestUpdateKeepsDiscount(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.addUser(t, "keeper", domain.RoleUser, "1990-03-15")
	march := e.addRestaurant(t, "march", 3)
	other := e.addRestaurant(t, "other", 9)
	svc := newReservationService(e, fixedRand(3))

	created, err := svc.Create(ctx, principalOf(user), ReservationInput{UserID: user.ID, RestaurantID: march.ID, ReservationDate: start, People: 2})
	require.NoError(t, err)
	require.Equal(t, "20%", created.Discount)

	newDate := time.Date(2027, 9, 9, 18, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, principalOf(user), created.ID, ReservationInput{UserID: user.ID, RestaurantID: other.ID, ReservationDate: newDate, People: 6})
	require.NoError(t, err)
	assert.Equal(t, "20%", updated.Discount)
	assert.Equal(t, other.ID, updated.RestaurantID)
	assert.Equal(t, "other", updated.RestaurantName)
	assert.Equal(t, other.Picture, updated.RestaurantPicture)
	require.NotNil(t, updated.UpdatedAt)

	stored, err := svc.Get(ctx, principalOf(user), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "20%", stored.Discount)
	assert.Equal(t, 6, stored.People)
	assert.True(t, newDate.Equal(stored.ReservationDate))
	require.NotNil(t, stored.UpdatedAt)
}

func TestUpdateResnapshotsCurrentRestaurant(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	user := e.addUser(t, "resnap", domain.RoleUser, "")
	r := e.addRestaurant(t, "before", 4)
	svc := newReservationService(e, fixedRand(0))

	created, err := svc.Create(ctx, principalOf(user), ReservationInput{UserID: user.ID, RestaurantID: r.ID, ReservationDate: start, People: 2})
	require.NoError(t, err)
	require.NoError(t, e.db.Model(r).Updates(map[string]any{"name": "after", "picture": "new.jpg"}).Error)

	updated, err := svc.Update(ctx, principalOf(user), created.ID, ReservationInput{UserID: user.ID, RestaurantID: r.ID, ReservationDate: start, People: 2})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.RestaurantName)
	assert.Equal(t, "new.jpg", updated.RestaurantPicture)
}

func TestUpdateFailures(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.addUser(t, "owner", domain.RoleUser, "")
	intruder := e.addUser(t, "intruder", domain.RoleUser, "")
	admin := e.addUser(t, "boss", domain.RoleAdmin, "")
	r := e.addRestaurant(t, "upd", 4)
	svc := newReservationService(e, fixedRand(0))

	created, err := svc.Create(ctx, principalOf(owner), ReservationInput{UserID: owner.ID, RestaurantID: r.ID, ReservationDate: start, People: 2})
	require.NoError(t, err)
	in := ReservationInput{UserID: owner.ID, RestaurantID: r.ID, ReservationDate: start, People: 3}

	_, err = svc.Update(ctx, principalOf(owner), uuid.New(), in)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Update(ctx, principalOf(owner), created.ID, ReservationInput{UserID: owner.ID, RestaurantID: uuid.New(), ReservationDate: start, People: 3})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Update(ctx, principalOf(intruder), created.ID, in)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	// Owners cannot hand a reservation to someone else
	_, err = svc.Update(ctx, principalOf(owner), created.ID, ReservationInput{UserID: intruder.ID, RestaurantID: r.ID, ReservationDate: start, People: 3})
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	_, err = svc.Update(ctx, principalOf(owner), created.ID, ReservationInput{UserID: owner.ID, RestaurantID: r.ID, ReservationDate: start, People: 16})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	// Admins can reassign
	moved, err := svc.Update(ctx, principalOf(admin), created.ID, ReservationInput{UserID: intruder.ID, RestaurantID: r.ID, ReservationDate: start, People: 3})
	require.NoError(t, err)
	assert.Equal(t, intruder.ID, moved.UserID)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.addUser(t, "deleter", domain.RoleUser, "")
	other := e.addUser(t, "bystander", domain.RoleUser, "")
	admin := e.addUser(t, "root", domain.RoleAdmin, "")
	r := e.addRestaurant(t, "del", 4)
	svc := newReservationService(e, fixedRand(0))
	in := ReservationInput{UserID: owner.ID, RestaurantID: r.ID, ReservationDate: start, People: 2}

	first, err := svc.Create(ctx, principalOf(owner), in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, principalOf(owner), in)
	require.NoError(t, err)

	err = svc.Delete(ctx, principalOf(owner), uuid.New())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	var count int64
	require.NoError(t, e.db.Model(&domain.Reservation{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	assert.Equal(t, domain.KindForbidden, domain.KindOf(svc.Delete(ctx, principalOf(other), first.ID)))

	require.NoError(t, svc.Delete(ctx, principalOf(owner), first.ID))
	require.NoError(t, svc.Delete(ctx, principalOf(admin), second.ID))

	_, err = svc.Get(ctx, principalOf(owner), first.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(svc.Delete(ctx, principalOf(owner), first.ID)))
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	ann := e.addUser(t, "ann", domain.RoleUser, "")
	ben := e.addUser(t, "ben", domain.RoleUser, "")
	admin := e.addUser(t, "chief", domain.RoleAdmin, "")
	r := e.addRestaurant(t, "list", 4)
	svc := newReservationService(e, fixedRand(0))

	for i := 1; i <= 3; i++ {
		_, err := svc.Create(ctx, principalOf(ann), ReservationInput{UserID: ann.ID, RestaurantID: r.ID, ReservationDate: start, People: i})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, principalOf(ben), ReservationInput{UserID: ben.ID, RestaurantID: r.ID, ReservationDate: start, People: 9})
	require.NoError(t, err)

	own, err := svc.ListByOwner(ctx, principalOf(ann), ann.ID)
	require.NoError(t, err)
	require.Len(t, own, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{own[0].People, own[1].People, own[2].People})
	for _, v := range own {
		assert.Equal(t, ann.ID, v.UserID)
		assert.Empty(t, v.UserName)
	}

	_, err = svc.ListByOwner(ctx, principalOf(ben), ann.ID)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	asAdmin, err := svc.ListByOwner(ctx, principalOf(admin), ann.ID)
	require.NoError(t, err)
	require.Len(t, asAdmin, 3)
	for _, v := range asAdmin {
		assert.Equal(t, "ann", v.UserName)
	}

	// Owner removed: placeholder name
	require.NoError(t, e.db.Delete(&domain.User{}, "id = ?", ben.ID).Error)
	orphaned, err := svc.ListByOwner(ctx, principalOf(admin), ben.ID)
	require.NoError(t, err)
	require.Len(t, orphaned, 1)
	assert.Equal(t, domain.UnknownOwnerName, orphaned[0].UserName)
}

func TestListAll(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	ann := e.addUser(t, "ann", domain.RoleUser, "")
	ben := e.addUser(t, "ben", domain.RoleUser, "")
	admin := e.addUser(t, "chief", domain.RoleAdmin, "")
	r := e.addRestaurant(t, "all", 4)
	svc := newReservationService(e, fixedRand(0))

	for _, u := range []*domain.User{ann, ben, ann} {
		_, err := svc.Create(ctx, principalOf(u), ReservationInput{UserID: u.ID, RestaurantID: r.ID, ReservationDate: start, People: 2})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, principalOf(admin), ReservationInput{UserID: uuid.New(), RestaurantID: r.ID, ReservationDate: start, People: 2})
	require.NoError(t, err)

	_, err = svc.ListAll(ctx, principalOf(ann))
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	all, err := svc.ListAll(ctx, principalOf(admin))
	require.NoError(t, err)
	require.Len(t, all, 4)
	names := map[string]int{}
	for _, v := range all {
		switch v.UserID {
		case ann.ID:
			assert.Equal(t, "ann", v.UserName)
		case ben.ID:
			assert.Equal(t, "ben", v.UserName)
		default:
			assert.Equal(t, domain.UnknownOwnerName, v.UserName)
		}
		names[v.UserName]++
	}
	assert.Equal(t, map[string]int{"ann": 2, "ben": 1, domain.UnknownOwnerName: 1}, names)
}
