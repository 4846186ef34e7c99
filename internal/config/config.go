package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For TTL durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBDriver   string        // Database driver: mysql or sqlite
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	SQLitePath string        // SQLite database file
	JWTSecret  string        // JWT secret key
	JWTTTL     time.Duration // JWT lifetime
	RedisAddr  string        // Redis server address, empty disables caching
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // Lifetime of cached catalog and directory reads
	IsProd     bool          // Is production environment
	LogLevel   string        // Logrus level name
	LogFormat  string        // text or json

	AdminName     string // Bootstrap admin display name
	AdminEmail    string // Bootstrap admin email
	AdminPassword string // Bootstrap admin password
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),                                   // Application port
		DBDriver:      getEnv("DB_DRIVER", "mysql"),                                 // Database driver
		DBUser:        os.Getenv("DB_USER"),                                         // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),                                     // Database password
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),                               // Database host
		DBPort:        getEnv("DB_PORT", "3306"),                                    // Database port
		DBName:        os.Getenv("DB_NAME"),                                         // Database name
		SQLitePath:    getEnv("SQLITE_PATH", "reservations.db"),                     // SQLite file
		JWTSecret:     os.Getenv("JWT_SECRET"),                                      // JWT secret key
		JWTTTL:        time.Duration(getInt("JWT_TTL_HOURS", 24)) * time.Hour,       // JWT lifetime
		RedisAddr:     os.Getenv("REDIS_ADDR"),                                      // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                                      // Redis password
		RedisDB:       redisDB,                                                      // Redis database number
		CacheTTL:      time.Duration(getInt("CACHE_TTL_SECONDS", 60)) * time.Second, // Cache lifetime
		IsProd:        os.Getenv("IS_PROD") == "true",                               // Is production environment
		LogLevel:      getEnv("LOG_LEVEL", "info"),                                  // Log level
		LogFormat:     getEnv("LOG_FORMAT", "text"),                                 // Log format
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),                        // Bootstrap admin name
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),                                     // Bootstrap admin email
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),                                  // Bootstrap admin password
	}
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt returns the variable parsed as a positive int or fallback
func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
