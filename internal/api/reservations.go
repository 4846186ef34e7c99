package api

import (
	"net/http" // HTTP status codes

	"reservation_system/internal/api/respond" // Error rendering
	"reservation_system/internal/domain"      // Domain errors
	"reservation_system/internal/service"     // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// ReservationRequest is the body of reservation create and update calls
type ReservationRequest struct {
	UserID          string `json:"userId"`          // Owner identifier
	RestaurantID    string `json:"restaurantId"`    // Restaurant identifier
	ReservationDate string `json:"reservationDate"` // RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD
	People          int    `json:"people"`          // Party size, 1-15
}

// input validates presence and format, then converts to service input
func (r ReservationRequest) input() (service.ReservationInput, error) {
	if r.UserID == "" || r.RestaurantID == "" || r.ReservationDate == "" || r.People == 0 {
		return service.ReservationInput{}, domain.NewValidation("Missing required fields")
	}
	userID, ok := parseID(r.UserID)
	if !ok {
		return service.ReservationInput{}, domain.NewValidation("Invalid ID format")
	}
	restaurantID, ok := parseID(r.RestaurantID)
	if !ok {
		return service.ReservationInput{}, domain.NewValidation("Invalid ID format")
	}
	date, ok := parseDate(r.ReservationDate)
	if !ok {
		return service.ReservationInput{}, domain.NewValidation("Invalid reservation date")
	}
	return service.ReservationInput{UserID: userID, RestaurantID: restaurantID, ReservationDate: date, People: r.People}, nil
}

// bindReservation reads and converts the request body, writing a 400 on failure
func bindReservation(c *gin.Context) (service.ReservationInput, bool) {
	var req ReservationRequest // Bind JSON request to struct
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, domain.NewValidation("Invalid request"))
		return service.ReservationInput{}, false
	}
	in, err := req.input()
	if err != nil {
		respond.Error(c, err)
		return service.ReservationInput{}, false
	}
	return in, true
}

// CreateReservationHandler books a reservation
func CreateReservationHandler(reservations *service.ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		in, ok := bindReservation(c)
		if !ok {
			return
		}
		res, err := reservations.Create(c.Request.Context(), p, in)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// GetReservationHandler returns one reservation
func GetReservationHandler(reservations *service.ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "reservation")
		if !ok {
			return
		}
		res, err := reservations.Get(c.Request.Context(), p, id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// UpdateReservationHandler edits a reservation; the discount is kept
func UpdateReservationHandler(reservations *service.ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "reservation")
		if !ok {
			return
		}
		in, ok := bindReservation(c)
		if !ok {
			return
		}
		res, err := reservations.Update(c.Request.Context(), p, id, in)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// DeleteReservationHandler cancels a reservation
func DeleteReservationHandler(reservations *service.ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "reservation")
		if !ok {
			return
		}
		if err := reservations.Delete(c.Request.Context(), p, id); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reservation deleted successfully"})
	}
}

// ListUserReservationsHandler returns one owner's reservations, newest first
func ListUserReservationsHandler(reservations *service.ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		ownerID, ok := pathID(c, "user")
		if !ok {
			return
		}
		views, err := reservations.ListByOwner(c.Request.Context(), p, ownerID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}
