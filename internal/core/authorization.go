package core

import (
	"slices"

	"foundation/internal/policies"
	"foundation/internal/ports"
	"foundation/internal/types"
)

// HasRole reports whether the user holds role. Absent users and users
// without a roles entry hold nothing.
func HasRole(user types.User, role string) bool {
	held, ok := heldRoles(user)
	if !ok {
		return false
	}
	return slices.Contains(held, role)
}

// HasAllRoles reports whether the held roles and the requested roles are the
// same set.
func HasAllRoles(user types.User, roles []string) bool {
	held, ok := heldRoles(user)
	if !ok {
		return false
	}
	return containsAll(held, roles) && containsAll(roles, held)
}

// HasAnyRole reports whether either role set contains the other.
func HasAnyRole(user types.User, roles []string) bool {
	held, ok := heldRoles(user)
	if !ok {
		return false
	}
	return containsAll(held, roles) || containsAll(roles, held)
}

func IsAdmin(user types.User) bool {
	return HasRole(user, policies.RoleAdmin)
}

func IsStaffMember(user types.User) bool {
	return HasRole(user, policies.RoleStaffMember)
}

// UserApp returns the route of the application the user lands in.
func UserApp(user types.User) string {
	if IsStaffMember(user) {
		return policies.AdminAppRoute
	}
	return policies.OrganisationAppRoute
}

// UserRoles returns a copy of the held roles, never nil.
func UserRoles(user types.User) []string {
	held, ok := heldRoles(user)
	if !ok {
		return []string{}
	}
	return append([]string{}, held...)
}

func heldRoles(user types.User) ([]string, bool) {
	if user == nil {
		return nil, false
	}
	return user.Roles()
}

func containsAll(set []string, values []string) bool {
	for _, value := range values {
		if !slices.Contains(set, value) {
			return false
		}
	}
	return true
}

// Authorizer answers session questions that depend on stored credentials.
type Authorizer struct {
	Credentials ports.CredentialPort
}

func (a Authorizer) HasToken() bool {
	if a.Credentials == nil {
		return false
	}
	return a.Credentials.HasToken()
}

// IsAuthLoaded reports whether a non-empty user record is loaded alongside a
// stored token.
func (a Authorizer) IsAuthLoaded(user types.User) bool {
	return user != nil && user.Size() > 0 && a.HasToken()
}
