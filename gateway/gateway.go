package gateway

import (
	"strings"

	"meal-market/models"
)

// Session is the resolved identity of the caller. A nil *Session means
// the request is anonymous.
type Session struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

// Decision is the outcome of an authorization check: either let the
// request through or redirect it somewhere safer.
type Decision struct {
	Allowed  bool
	Redirect string
}

func Allow() Decision                 { return Decision{Allowed: true} }
func RedirectTo(path string) Decision { return Decision{Redirect: path} }

const LoginPath = "/login"

// publicPaths are the auth pages reachable without a session.
var publicPaths = map[string]bool{
	LoginPath:          true,
	"/register":        true,
	"/forgot-password": true,
	"/reset-password":  true,
}

// roleNamespaces maps each dashboard prefix to the single role that owns
// it. Longest prefixes are matched first so /provider-dashboard never
// falls into /dashboard.
var roleNamespaces = []struct {
	prefix string
	role   models.UserRole
}{
	{"/provider-dashboard", models.RoleProvider},
	{"/admin-dashboard", models.RoleAdmin},
	{"/dashboard", models.RoleCustomer},
}

var roleHomes = map[models.UserRole]string{
	models.RoleCustomer: "/dashboard",
	models.RoleProvider: "/provider-dashboard",
	models.RoleAdmin:    "/admin-dashboard",
}

// RoleHome returns the dashboard root for a role. Unknown roles land on
// the login page rather than any dashboard.
func RoleHome(role models.UserRole) string {
	if home, ok := roleHomes[role]; ok {
		return home
	}
	return LoginPath
}

// Authorize decides how to handle a request for path by a caller with the
// given session. It is a pure function: no token refresh, no session
// mutation. Callers that fail to resolve a session (resolver error
// included) must pass nil — never fail open.
func Authorize(path string, session *Session) Decision {
	public := publicPaths[path]

	if session == nil {
		if public {
			return Allow()
		}
		if _, scoped := owningRole(path); scoped {
			return RedirectTo(LoginPath)
		}
		return Allow()
	}

	// An authenticated user should never see the login form.
	if public {
		return RedirectTo(RoleHome(session.Role))
	}

	if owner, scoped := owningRole(path); scoped && owner != session.Role {
		return RedirectTo(RoleHome(session.Role))
	}
	return Allow()
}

// owningRole reports which role owns the namespace containing path.
func owningRole(path string) (models.UserRole, bool) {
	for _, ns := range roleNamespaces {
		if path == ns.prefix || strings.HasPrefix(path, ns.prefix+"/") {
			return ns.role, true
		}
	}
	return "", false
}
