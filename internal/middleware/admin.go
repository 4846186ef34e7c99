package middleware

import (
	"reservation_system/internal/api/respond" // Error rendering
	"reservation_system/internal/domain"      // Principal and error kinds

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware rejects callers whose stored role is not admin.
// It must run after JWTAuthMiddleware, which loads the role from the database.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := PrincipalFrom(c) // Get caller from context
		// Check if caller exists in context
		if !exists {
			respond.Abort(c, domain.NewUnauthorized("Unauthorized"))
			return
		}
		// Check if user role is admin
		if !principal.IsAdmin() {
			respond.Abort(c, domain.NewForbidden("Unauthorized access"))
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
