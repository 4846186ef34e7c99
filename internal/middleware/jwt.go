package middleware

import (
	"context" // Context for principal resolution
	"strings" // String manipulation

	"reservation_system/internal/api/respond" // Error rendering
	"reservation_system/internal/domain"      // Principal and error kinds

	"github.com/gin-gonic/gin" // Gin web framework
)

const principalKey = "principal" // Context key holding the caller

// Authenticator resolves a bearer token into the calling Principal
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// JWTAuthMiddleware validates JWT tokens and stores the caller's Principal in the context
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Abort(c, domain.NewUnauthorized("Missing or invalid Authorization header"))
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		principal, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			respond.Abort(c, err) // Unauthorized, or internal if the store failed
			return
		}
		c.Set(principalKey, principal) // Store the caller in context
		c.Next()                       // Proceed to the next handler
	}
}

// PrincipalFrom returns the caller stored by JWTAuthMiddleware
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
