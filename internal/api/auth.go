package api

import (
	"net/http" // HTTP status codes

	"reservation_system/internal/api/respond" // Error rendering
	"reservation_system/internal/domain"      // Domain models and errors
	"reservation_system/internal/service"     // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for signup
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`           // Display name must be provided
	Email    string `json:"email" binding:"required,email"`    // Email must be valid
	Password string `json:"password" binding:"required,min=6"` // Password must be provided
	Phone    string `json:"phone"`                             // Optional phone
	Birthday string `json:"birthday"`                          // Optional, YYYY-MM-DD
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  UserResponse `json:"user"`  // Authenticated account
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
	Role     string  `json:"role"`
}

func toUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
	if u.Birthday != nil {
		b := u.Birthday.Format("2006-01-02")
		resp.Birthday = &b
	}
	return resp
}

// SignupHandler registers a new user account
func SignupHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, domain.NewValidation("Invalid request"))
			return
		}
		in := service.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password, Phone: req.Phone}
		if req.Birthday != "" {
			b, ok := parseDate(req.Birthday)
			if !ok {
				respond.Error(c, domain.NewValidation("Invalid birthday"))
				return
			}
			in.Birthday = &b
		}
		if _, err := users.Signup(c.Request.Context(), in); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, domain.NewValidation("Invalid request"))
			return
		}
		token, user, err := users.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

// MeHandler returns the caller's own account
func MeHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		user, err := users.Profile(c.Request.Context(), p)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}
