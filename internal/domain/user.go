package domain

import (
	"time" // Birthday and audit timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM hooks
)

// Roles a user account can hold
const (
	RoleUser  = "user"  // Regular customer
	RoleAdmin = "admin" // Catalog and reservation administrator
)

// PasswordHashCost is the bcrypt cost for every stored password
const PasswordHashCost = 12

// User Model
type User struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`                  // Primary key
	Name      string     `gorm:"not null" json:"name"`                                // Display name
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // Unique email
	Password  string     `gorm:"not null" json:"-"`                                   // Hashed password
	Phone     string     `json:"phone"`                                               // Contact phone
	Birthday  *time.Time `json:"birthday,omitempty"`                                  // Optional birth date
	Role      string     `gorm:"type:varchar(16);default:user" json:"role"`           // Role: user or admin
	CreatedAt time.Time  `json:"createdAt"`                                           // Signup time
}

// BeforeCreate assigns an identifier when none was set
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the account holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BirthMonth returns the 1-indexed calendar month of the birthday, 0 when unknown
func (u *User) BirthMonth() int {
	if u == nil || u.Birthday == nil || u.Birthday.IsZero() {
		return 0
	}
	return int(u.Birthday.UTC().Month())
}

// UserSummary is the admin directory projection of a user
type UserSummary struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday,omitempty"`
}
