// Package guard maps URL paths to the access tier required to visit
// them. The mapping is a pure function over three static prefix lists;
// enforcement lives in the HTTP middleware.
package guard

import "strings"

type Tier int

const (
	// Public pages need no session at all.
	Public Tier = iota
	// Protected pages need any authenticated session.
	Protected
	// GuestOnly pages turn authenticated visitors away (login, register).
	GuestOnly
	// AdminOnly pages additionally require an admin role.
	AdminOnly
)

var (
	protectedPrefixes = []string{
		"/account",
		"/cart",
		"/hold",
		"/inquiries",
		"/logout",
	}
	guestOnlyPrefixes = []string{
		"/login",
		"/register",
		"/verify-otp",
	}
	adminPrefixes = []string{
		"/admin",
	}
)

// RedirectDelaySeconds is how long an access-denied page stays readable
// before the browser is sent to the login page.
const RedirectDelaySeconds = 5

// TierFor returns the access tier required for a path. Admin wins over
// the other lists so /admin stays gated even if nested under another
// prefix someday.
func TierFor(path string) Tier {
	switch {
	case matchesAny(path, adminPrefixes):
		return AdminOnly
	case matchesAny(path, guestOnlyPrefixes):
		return GuestOnly
	case matchesAny(path, protectedPrefixes):
		return Protected
	}
	return Public
}

// IsLoginPath reports whether a 401 on this path must not trigger the
// global redirect to /login (prevents a loop on failed login attempts).
func IsLoginPath(path string) bool {
	return path == "/login" || strings.HasPrefix(path, "/login/")
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
