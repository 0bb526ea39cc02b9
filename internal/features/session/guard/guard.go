// Package guard decides whether a navigation target is permitted for a
// session. Pure functions of (snapshot, route class); transport-level
// enforcement lives in middleware built on top.
package guard

import "arenax-backend/internal/features/session/models"

// RouteClass classifies a navigation target.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAuthenticated
	RouteAdmin
)

// Decision is the guard outcome.
type Decision int

const (
	// Allow permits the navigation.
	Allow Decision = iota
	// Wait means restoration is still in flight; no redirect decision may
	// be made yet, the caller shows a neutral loading state.
	Wait
	// RedirectLogin sends the client to the login page.
	RedirectLogin
	// RedirectAdminLogin sends the client to the admin login page.
	RedirectAdminLogin
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect_login"
	case RedirectAdminLogin:
		return "redirect_admin_login"
	}
	return "unknown"
}

// Decide maps session state and route class to a decision.
func Decide(snap models.Snapshot, class RouteClass) Decision {
	if class == RoutePublic {
		return Allow
	}

	// Never redirect before restoration completes.
	if snap.IsLoading() {
		return Wait
	}

	switch class {
	case RouteAuthenticated:
		if !snap.IsAuthenticated() {
			return RedirectLogin
		}
	case RouteAdmin:
		if !snap.IsAuthenticated() || snap.Profile == nil || snap.Profile.Role != models.RoleAdmin {
			return RedirectAdminLogin
		}
	}
	return Allow
}
