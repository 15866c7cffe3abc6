package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gemstore/internal/guard"
	"gemstore/internal/session"
)

// LoadSession resolves the gateway session cookie into a request
// principal. Absent or invalid cookies pass through unauthenticated;
// Guard decides what that means for the route.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ck, err := r.Cookie(CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			sid, err := Verify(ck.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			sess, ok := store.Get(sid)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			p := Principal{SessionID: sess.ID, User: sess.User, Cookies: sess.Cookies}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// Guard enforces the route tier for every request. Unauthenticated
// access to a gated route answers with a readable denial and a delayed
// redirect to the login page; a wrong role renders a denial in place
// and never redirects.
func Guard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, authed := FromContext(r.Context())
			switch guard.TierFor(r.URL.Path) {
			case guard.GuestOnly:
				if authed {
					http.Redirect(w, r, "/", http.StatusSeeOther)
					return
				}
			case guard.Protected:
				if !authed {
					denyUnauthenticated(w)
					return
				}
			case guard.AdminOnly:
				if !authed {
					denyUnauthenticated(w)
					return
				}
				if !p.User.Role.IsAdmin() {
					denyRole(w)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func denyUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Refresh", fmt.Sprintf("%d; url=/login", guard.RedirectDelaySeconds))
	writeDenial(w, http.StatusUnauthorized, "Please sign in to continue.")
}

func denyRole(w http.ResponseWriter) {
	writeDenial(w, http.StatusForbidden, "You do not have permission to view this page.")
}

func writeDenial(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
