package db

import (
	"fmt" // Error formatting

	"reservation_system/internal/config" // Application configuration

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector // Driver specific dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.MySQLDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)} // Only surface slow queries and errors
	if !cfg.IsProd {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}
	return gorm.Open(dialector, gormCfg)
}
