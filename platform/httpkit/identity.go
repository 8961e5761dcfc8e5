package httpkit

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the caller resolved by AuthRequired. Handlers read it without
// touching gin context keys directly.
type Identity struct {
	userID uuid.UUID
	roles  []string
}

// UserID returns the authenticated user's ID, or uuid.Nil.
func (i Identity) UserID() uuid.UUID {
	return i.userID
}

// HasRole checks if the user has a specific role.
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.roles, role)
}

// IsAuthenticated reports whether AuthRequired accepted a token.
func (i Identity) IsAuthenticated() bool {
	return i.userID != uuid.Nil
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	uid, ok := c.Value(ContextUserIDKey).(uuid.UUID)
	if !ok {
		return Identity{}
	}
	roles, _ := c.Value(ContextRolesKey).([]string)
	return Identity{userID: uid, roles: roles}
}
