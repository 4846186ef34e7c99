package main

import (
	"reservation_system/internal/config" // Custom import path (Config)
	"reservation_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Optional admin bootstrap
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}
	if err := db.EnsureAdmin(gdb, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatalf("admin bootstrap failed: %v", err)
	}
}
