package api

import (
	"net/http" // HTTP status codes
	"time"     // Wall clock

	"reservation_system/internal/middleware" // Authentication and logging
	"reservation_system/internal/service"    // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// Services bundles everything the HTTP layer calls into
type Services struct {
	Users        *service.UserService
	Restaurants  *service.RestaurantService
	Reservations *service.ReservationService
	Now          func() time.Time // Wall clock for opening status, time.Now when nil
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(s Services) *gin.Engine {
	now := s.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()                                    // Gin router instance
	r.Use(middleware.RequestLogger(), gin.Recovery()) // Structured request logs, panic recovery

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/signup", SignupHandler(s.Users)) // Registration endpoint
	r.POST("/login", LoginHandler(s.Users))   // Login endpoint

	// Public catalog reads
	r.GET("/restaurants", ListRestaurantsHandler(s.Restaurants, now))
	r.GET("/restaurants/:id", GetRestaurantHandler(s.Restaurants, now))

	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(s.Users)) // Resolve the caller for everything below
	authed.GET("/me", MeHandler(s.Users))

	// Reservation routes; ownership is enforced per operation
	authed.POST("/reservations", CreateReservationHandler(s.Reservations))
	authed.GET("/reservations/:id", GetReservationHandler(s.Reservations))
	authed.PUT("/reservations/:id", UpdateReservationHandler(s.Reservations))
	authed.DELETE("/reservations/:id", DeleteReservationHandler(s.Reservations))
	authed.GET("/reservations/user/:id", ListUserReservationsHandler(s.Reservations))

	// Admin routes
	admin := authed.Group("")
	admin.Use(middleware.AdminOnlyMiddleware())
	admin.GET("/users", ListUsersHandler(s.Users))
	admin.GET("/reservations", ListReservationsHandler(s.Reservations))
	admin.POST("/restaurants", CreateRestaurantHandler(s.Restaurants))
	admin.PUT("/restaurants/:id", UpdateRestaurantHandler(s.Restaurants))
	admin.DELETE("/restaurants/:id", DeleteRestaurantHandler(s.Restaurants))

	return r
}
