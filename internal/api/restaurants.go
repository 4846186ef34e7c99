package api

import (
	"net/http" // HTTP status codes
	"time"     // Wall clock for opening status

	"reservation_system/internal/api/respond" // Error rendering
	"reservation_system/internal/domain"      // Domain models and errors
	"reservation_system/internal/service"     // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// RestaurantRequest is the body of restaurant create and update calls
type RestaurantRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	OpenTime      string `json:"open_time"`
	CloseTime     string `json:"close_time"`
	History       string `json:"history"`
	Picture       string `json:"picture"`
	DiscountMonth int    `json:"discount_month"`
}

func (r RestaurantRequest) input() service.RestaurantInput {
	return service.RestaurantInput{
		Name: r.Name, Address: r.Address, Phone: r.Phone, OpenTime: r.OpenTime, CloseTime: r.CloseTime,
		History: r.History, Picture: r.Picture, DiscountMonth: r.DiscountMonth,
	}
}

// RestaurantResponse is a restaurant with its opening status at request time
type RestaurantResponse struct {
	domain.Restaurant
	IsOpen bool `json:"is_open"` // Derived, never stored
}

func withStatus(r domain.Restaurant, now time.Time) RestaurantResponse {
	return RestaurantResponse{Restaurant: r, IsOpen: domain.IsOpen(r.OpenTime, r.CloseTime, now)}
}

// ListRestaurantsHandler returns the whole catalog
func ListRestaurantsHandler(restaurants *service.RestaurantService, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := restaurants.List(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		at := now()
		resp := make([]RestaurantResponse, len(rows))
		for i, r := range rows {
			resp[i] = withStatus(r, at)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetRestaurantHandler returns one restaurant
func GetRestaurantHandler(restaurants *service.RestaurantService, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "restaurant")
		if !ok {
			return
		}
		r, err := restaurants.Get(c.Request.Context(), id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, withStatus(*r, now()))
	}
}

// CreateRestaurantHandler adds a restaurant to the catalog
func CreateRestaurantHandler(restaurants *service.RestaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req RestaurantRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, domain.NewValidation("Invalid request"))
			return
		}
		r, err := restaurants.Create(c.Request.Context(), p, req.input())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}

// UpdateRestaurantHandler replaces every field of a restaurant
func UpdateRestaurantHandler(restaurants *service.RestaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "restaurant")
		if !ok {
			return
		}
		var req RestaurantRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, domain.NewValidation("Invalid request"))
			return
		}
		r, err := restaurants.Update(c.Request.Context(), p, id, req.input())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// DeleteRestaurantHandler removes a restaurant
func DeleteRestaurantHandler(restaurants *service.RestaurantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "restaurant")
		if !ok {
			return
		}
		if err := restaurants.Delete(c.Request.Context(), p, id); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
	}
}
