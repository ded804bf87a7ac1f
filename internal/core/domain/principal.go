package domain

// Principal is the identity resolved for a single request. The zero value is
// the anonymous caller. It is built once by the authentication middleware and
// passed by value, never mutated afterwards.
type Principal struct {
	Username string
	Role     Role
}

// Anonymous is the principal of a request that carried no bearer token.
var Anonymous = Principal{}

// NewPrincipal returns the principal for an authenticated account.
func NewPrincipal(username string, role Role) Principal {
	return Principal{Username: username, Role: role}
}

// IsAnonymous reports whether no identity was established.
func (p Principal) IsAnonymous() bool {
	return p.Username == ""
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return !p.IsAnonymous() && p.Role == RoleAdmin
}

// Access is the role requirement attached to an endpoint.
type Access int

const (
	// AccessAuthenticated is the zero value so that unlisted routes require a caller.
	AccessAuthenticated Access = iota
	AccessPublic
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessAdmin:
		return "admin"
	default:
		return "authenticated"
	}
}
