// Package respond renders service errors as JSON responses.
package respond

import (
	"net/http" // HTTP status codes

	"reservation_system/internal/domain" // Error kinds

	"github.com/gin-gonic/gin" // Gin web framework
)

// StatusOf maps an error kind onto its HTTP status
func StatusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest // Duplicate signup stays 400
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error writes {"error": message, "kind": kind} with the matching status
func Error(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	c.JSON(StatusOf(kind), gin.H{"error": domain.MessageOf(err), "kind": kind})
}

// Abort is Error followed by aborting the handler chain
func Abort(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	c.AbortWithStatusJSON(StatusOf(kind), gin.H{"error": domain.MessageOf(err), "kind": kind})
}
