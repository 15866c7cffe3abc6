package session

import (
	"net/http"
	"testing"
	"time"

	"gemstore/internal/models"
)

func testUser() models.User {
	return models.User{ID: "u-1", Email: "a@b.com", Role: models.RoleUser, Status: models.StatusApproved}
}

func TestStoreCreateGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour, time.Hour)
	defer store.Close()

	cookies := []*http.Cookie{{Name: "sid", Value: "abc"}}
	sess := store.Create(testUser(), cookies)
	if sess.ID == "" {
		t.Fatal("expected session ID to be set")
	}

	got, ok := store.Get(sess.ID)
	if !ok {
		t.Fatal("expected session to be found")
	}
	if got.User.Email != "a@b.com" {
		t.Fatalf("unexpected user %+v", got.User)
	}
	if len(got.Cookies) != 1 || got.Cookies[0].Value != "abc" {
		t.Fatalf("expected backend cookies kept, got %+v", got.Cookies)
	}
}

func TestStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(-time.Second, time.Hour)
	defer store.Close()

	sess := store.Create(testUser(), nil)
	if _, ok := store.Get(sess.ID); ok {
		t.Fatal("expected expired session to be gone")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired session evicted, len=%d", store.Len())
	}
}

func TestStoreSweeper(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Millisecond, 5*time.Millisecond)
	defer store.Close()

	store.Create(testUser(), nil)
	deadline := time.Now().Add(time.Second)
	for store.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweeper did not evict expired session")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStoreSetUserDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour, time.Hour)
	defer store.Close()

	sess := store.Create(testUser(), nil)

	updated := testUser()
	updated.Name = "Renamed"
	store.SetUser(sess.ID, updated)

	got, ok := store.Get(sess.ID)
	if !ok || got.User.Name != "Renamed" {
		t.Fatalf("expected updated user, got %+v", got.User)
	}

	store.Delete(sess.ID)
	if _, ok := store.Get(sess.ID); ok {
		t.Fatal("expected deleted session to be gone")
	}
}
