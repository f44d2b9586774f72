package domain

// Role is the closed set of authorization categories the console knows about.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	// RoleUnknown is the explicit variant for backend role identifiers the
	// console does not recognize. It never matches any route's role set.
	RoleUnknown Role = "unknown"
)

// Backend role identifiers as they appear inside credential claims and in
// login responses.
const (
	apiRoleAdmin    = "ROLE_ADMIN"
	apiRoleCustomer = "ROLE_CUSTOMER"
)

// MapAPIRole converts a backend role identifier to a console Role.
// Unrecognized or empty identifiers map to RoleUnknown.
func MapAPIRole(apiRole string) Role {
	switch apiRole {
	case apiRoleAdmin:
		return RoleAdmin
	case apiRoleCustomer:
		return RoleCustomer
	default:
		return RoleUnknown
	}
}

// Known reports whether r is one of the recognized roles.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// HomePath returns the portal landing page for the role. Unknown roles land
// on the entry route.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleCustomer:
		return "/customer/dashboard"
	default:
		return "/"
	}
}
