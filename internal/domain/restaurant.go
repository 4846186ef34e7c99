package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant Model
type Restaurant struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"` // Primary key
	Name          string    `gorm:"not null" json:"name"`
	Address       string    `gorm:"not null" json:"address"`
	Phone         string    `gorm:"not null" json:"phone"`
	OpenTime      string    `gorm:"not null" json:"open_time"`  // Free text, e.g. "10:00 AM"
	CloseTime     string    `gorm:"not null" json:"close_time"` // Free text, e.g. "9:30 PM"
	History       string    `gorm:"type:text;not null" json:"history"`
	Picture       string    `gorm:"not null" json:"picture"`        // Picture URL
	DiscountMonth int       `gorm:"not null" json:"discount_month"` // Birthday promotion month, 1-12
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an identifier when none was set
func (r *Restaurant) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
