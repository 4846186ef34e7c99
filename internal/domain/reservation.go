package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Party size bounds accepted for a reservation
const (
	MinPeople = 1
	MaxPeople = 15
)

// Reservation Model
//
// RestaurantName and RestaurantPicture are copied from the restaurant when the
// reservation is written and are not kept in sync afterwards. No foreign keys
// are declared, so removing a user or restaurant leaves its reservations in place.
type Reservation struct {
	ID                uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`               // Primary key
	UserID            uuid.UUID  `gorm:"type:char(36);index;not null" json:"userId"`       // Owner reference
	RestaurantID      uuid.UUID  `gorm:"type:char(36);index;not null" json:"restaurantId"` // Restaurant reference
	RestaurantName    string     `gorm:"not null" json:"restaurantName"`                   // Snapshot of restaurant name
	RestaurantPicture string     `gorm:"not null" json:"restaurantPicture"`                // Snapshot of restaurant picture
	ReservationDate   time.Time  `gorm:"not null" json:"reservationDate"`                  // Reserved date-time
	People            int        `gorm:"not null" json:"people"`                           // Party size
	Discount          string     `gorm:"type:varchar(8);not null" json:"discount"`         // Fixed at creation
	CreatedAt         time.Time  `gorm:"index" json:"createdAt"`                           // Creation time
	UpdatedAt         *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`  // Last edit, nil until edited
}

// BeforeCreate assigns an identifier when none was set
func (r *Reservation) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ReservationView is a reservation enriched with its owner's display name
type ReservationView struct {
	Reservation
	UserName string `json:"userName,omitempty"` // Owner display name, admin listings only
}

// UnknownOwnerName is shown when the owning user no longer exists
const UnknownOwnerName = "Unknown"
