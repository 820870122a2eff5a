// Package access decides whether an authenticated request may proceed.
//
// The gate is a pure function of the token claims and the live user record:
// every call reloads the user, so a role change or a disabled account takes
// effect on the next request without any token revocation.
package access

import (
	"slices"

	"github.com/dmitrijs2005/bookinggate/internal/server/models"
)

// Requirement is either NoRequirement (any authenticated account) or
// RoleIn(roles...). The zero value is NoRequirement.
type Requirement struct {
	roles []models.Role
}

func NoRequirement() Requirement {
	return Requirement{}
}

// RoleIn requires the caller's live role to be one of roles. An empty list
// admits nobody.
func RoleIn(roles ...models.Role) Requirement {
	if roles == nil {
		roles = []models.Role{}
	}
	return Requirement{roles: slices.Clone(roles)}
}

// Restricted reports whether a role set was given.
func (r Requirement) Restricted() bool {
	return r.roles != nil
}

func (r Requirement) Roles() []models.Role {
	return slices.Clone(r.roles)
}

func (r Requirement) allows(role models.Role) bool {
	return slices.Contains(r.roles, role)
}
