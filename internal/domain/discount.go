package domain

import (
	"strconv"
	"sync"
)

// NoDiscount is stored when the birthday promotion does not apply
const NoDiscount = "0%"

// DiscountPercents are the birthday promotion rates, picked uniformly
var DiscountPercents = []int{5, 10, 15, 20, 25, 30}

// Randomizer is the random source used to pick a discount; *rand.Rand satisfies it
type Randomizer interface {
	IntN(n int) int
}

// LockedRandomizer serializes access to a Randomizer that is not safe for concurrent use
type LockedRandomizer struct {
	mu  sync.Mutex
	rnd Randomizer
}

// NewLockedRandomizer wraps rnd for use from many goroutines
func NewLockedRandomizer(rnd Randomizer) *LockedRandomizer {
	return &LockedRandomizer{rnd: rnd}
}

// IntN returns rnd.IntN(n) under the lock
func (l *LockedRandomizer) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}

// BirthdayDiscount returns the discount for user booking restaurant.
// A nil user or restaurant yields NoDiscount.
func BirthdayDiscount(user *User, restaurant *Restaurant, rnd Randomizer) string {
	if user == nil || restaurant == nil {
		return NoDiscount
	}
	month := user.BirthMonth()
	if month == 0 || month != restaurant.DiscountMonth {
		return NoDiscount
	}
	pct := DiscountPercents[rnd.IntN(len(DiscountPercents))]
	return strconv.Itoa(pct) + "%"
}
