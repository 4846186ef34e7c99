package api

import (
	"strings" // String trimming
	"time"    // Date parsing

	"reservation_system/internal/api/respond" // Error rendering
	"reservation_system/internal/domain"      // Principal and error kinds
	"reservation_system/internal/middleware"  // Principal lookup

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Identifier parsing
)

// dateLayouts are the accepted reservation date formats, tried in order
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// parseID parses an identifier, rejecting the nil UUID
func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter, writing a 400 on failure
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respond.Error(c, domain.NewValidation("Invalid "+what+" ID format"))
	}
	return id, ok
}

// parseDate accepts RFC 3339, datetime-local and plain date values
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// principal returns the authenticated caller, writing a 401 when absent
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, domain.NewUnauthorized("Unauthorized"))
	}
	return p, ok
}
