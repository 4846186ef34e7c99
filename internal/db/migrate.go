package db

import (
	"errors"  // Error inspection
	"strings" // Email normalization

	"reservation_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"  // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Restaurant{}, &domain.Reservation{}); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// EnsureAdmin creates the admin account, or promotes an existing account with that email
func EnsureAdmin(db *gorm.DB, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var user domain.User
	err := db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if user.IsAdmin() {
			return nil // Nothing to do
		}
		if err := db.Model(&user).Update("role", domain.RoleAdmin).Error; err != nil {
			return err
		}
		logrus.WithField("email", email).Info("Existing user promoted to admin")
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), domain.PasswordHashCost)
	if err != nil {
		return err
	}
	admin := domain.User{Name: name, Email: email, Password: string(hash), Role: domain.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"email": email, "user_id": admin.ID}).Info("Admin account created")
	return nil
}
