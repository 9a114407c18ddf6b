package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"foundation/internal/types"
)

const (
	RoleServiceAccount      = "service-account"
	RoleAdmin               = "admin"
	RoleStaffMember         = "staff-member"
	RoleRelationsTeam       = "relations-team"
	RoleCustomerServiceTeam = "customer-service-team"
	RoleEmployerMember      = "employer-member"
	RoleJobSeeker           = "job-seeker"
)

const (
	AdminAppRoute        = "/admin"
	OrganisationAppRoute = "/organisation"
)

var roleCatalog = []types.Role{
	{Name: RoleServiceAccount, Description: "Service account"},
	{Name: RoleAdmin, Description: "Administrator"},
	{Name: RoleStaffMember, Description: "Staff Member"},
	{Name: RoleRelationsTeam, Description: "Relationships Team"},
	{Name: RoleCustomerServiceTeam, Description: "Customer Service Team"},
	{Name: RoleEmployerMember, Description: "Employer user"},
	{Name: RoleJobSeeker, Description: "Job seeker"},
}

// RoleCatalog returns a copy of the known roles in display order.
func RoleCatalog() []types.Role {
	roles := make([]types.Role, len(roleCatalog))
	copy(roles, roleCatalog)
	return roles
}

func LookupRole(name string) (types.Role, error) {
	for _, role := range roleCatalog {
		if role.Name == name {
			return role, nil
		}
	}
	return types.Role{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown role: %s", name))
}

// UnknownRoles returns the names outside the catalog, preserving input order.
func UnknownRoles(names []string) []string {
	var unknown []string
	for _, name := range names {
		if _, err := LookupRole(name); err != nil {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
