package domain

import "github.com/google/uuid"

// Principal is the authenticated caller an operation runs on behalf of
type Principal struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the caller holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the caller may act on data owned by ownerID
func (p Principal) CanAccess(ownerID uuid.UUID) bool {
	return p.IsAdmin() || (p.ID != uuid.Nil && p.ID == ownerID)
}
