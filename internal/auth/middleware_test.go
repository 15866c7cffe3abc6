package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gemstore/internal/models"
	"gemstore/internal/session"
)

func guardedHandler(store *session.Store, reached *bool) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
	return LoadSession(store)(Guard()(inner))
}

func sessionCookie(t *testing.T, store *session.Store, role models.Role) *http.Cookie {
	t.Helper()
	sess := store.Create(models.User{ID: "u-1", Email: "a@b.com", Role: role, Status: models.StatusApproved}, nil)
	tok, err := Sign(sess.ID)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return &http.Cookie{Name: CookieName, Value: tok}
}

func TestGuardProtectedUnauthenticated(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := session.NewStore(time.Hour, time.Hour)
	defer store.Close()

	var reached bool
	rec := httptest.NewRecorder()
	guardedHandler(store, &reached).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if reached {
		t.Fatal("handler must not run for unauthenticated protected access")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("Refresh"); got != "5; url=/login" {
		t.Fatalf("expected delayed redirect header, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "sign in") {
		t.Fatalf("expected denial message, got %s", rec.Body.String())
	}
}

func TestGuardAdminWrongRoleNoRedirect(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := session.NewStore(time.Hour, time.Hour)
	defer store.Close()

	var reached bool
	req := httptest.NewRequest(http.MethodGet, "/admin/customers/pending", nil)
	req.AddCookie(sessionCookie(t, store, models.RoleUser))
	rec := httptest.NewRecorder()
	guardedHandler(store, &reached).ServeHTTP(rec, req)

	if reached {
		t.Fatal("handler must not run for a non-admin")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec.Header().Get("Refresh") != "" {
		t.Fatal("role denial must never redirect")
	}
}

func TestGuardAdminAllowed(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := session.NewStore(time.Hour, time.Hour)
	defer store.Close()

	for _, role := range []models.Role{models.RoleAdmin, models.RoleSuperAdmin} {
		var reached bool
		req := httptest.NewRequest(http.MethodGet, "/admin/customers/pending", nil)
		req.AddCookie(sessionCookie(t, store, role))
		rec := httptest.NewRecorder()
		guardedHandler(store, &reached).ServeHTTP(rec, req)

		if !reached || rec.Code != http.StatusOK {
			t.Fatalf("expected %s to pass, got %d", role, rec.Code)
		}
	}
}

func TestGuardGuestOnlyRedirectsAuthenticated(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := session.NewStore(time.Hour, time.Hour)
	defer store.Close()

	var reached bool
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(sessionCookie(t, store, models.RoleUser))
	rec := httptest.NewRecorder()
	guardedHandler(store, &reached).ServeHTTP(rec, req)

	if reached {
		t.Fatal("guest-only page must not render for an authenticated user")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuardPublicPassesThrough(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := session.NewStore(time.Hour, time.Hour)
	defer store.Close()

	var reached bool
	rec := httptest.NewRecorder()
	guardedHandler(store, &reached).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/diamonds", nil))

	if !reached {
		t.Fatal("public route must pass through unauthenticated")
	}
}

func TestLoadSessionIgnoresGarbageCookie(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	store := session.NewStore(time.Hour, time.Hour)
	defer store.Close()

	var reached bool
	req := httptest.NewRequest(http.MethodGet, "/diamonds", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	guardedHandler(store, &reached).ServeHTTP(rec, req)

	if !reached {
		t.Fatal("garbage cookie must fall back to unauthenticated, not fail")
	}
}
