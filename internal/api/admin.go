package api

import (
	"net/http" // HTTP status codes

	"reservation_system/internal/api/respond" // Error rendering
	"reservation_system/internal/service"     // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListUsersHandler returns the user directory sorted by name
func ListUsersHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		dir, err := users.Directory(c.Request.Context(), p)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, dir) // Return the directory
	}
}

// ListReservationsHandler returns every reservation with its owner's name
func ListReservationsHandler(reservations *service.ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		views, err := reservations.ListAll(c.Request.Context(), p)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}
