// Package auth holds the identity type and the authorization policy for
// to-do records. Two roles exist: a regular owner and the single admin.
package auth

import "github.com/gin-gonic/gin"

type Role int

const (
	RoleOwner Role = iota
	RoleAdmin
)

// Identity is what a verified session resolves to. The role is decided once
// per request by the Resolver and carried along, downstream code never
// re-runs the admin check.
type Identity struct {
	ID       string
	Username string
	Role     Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// ContextKey is where the session middleware stores the resolved identity
// on the gin context. Absent key means the request is anonymous.
const ContextKey = "identity"

func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return Identity{}, false
	}

	id, ok := v.(Identity)
	return id, ok
}
