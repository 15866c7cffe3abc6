package hold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"gemstore/internal/upstream"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api, err := upstream.New(srv.URL, 5*time.Second, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("upstream.New: %v", err)
	}
	return NewService(api, zap.NewNop().Sugar())
}

func TestPlace(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diamonds/hold" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["stockRef"] != "D-100" {
			t.Errorf("expected stockRef D-100, got %q", body["stockRef"])
		}
		w.Write([]byte(`{"success":true,"message":"Diamond held for 24 hours"}`))
	}))

	res, err := svc.Place(context.Background(), nil, "D-100")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.StockRef != "D-100" || res.Message != "Diamond held for 24 hours" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPlaceRequiresStockRef(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be sent without a stock ref")
	}))
	if _, err := svc.Place(context.Background(), nil, ""); !errors.Is(err, ErrStockRefRequired) {
		t.Fatalf("expected ErrStockRefRequired, got %v", err)
	}
}

func TestExtendSendsSelectedHoursExactly(t *testing.T) {
	t.Parallel()

	var gotHours float64
	var gotPath string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotHours, _ = body["hours"].(float64)
		w.Write([]byte(`{"success":true,"message":"Hold extended"}`))
	}))

	for _, hours := range AllowedHours {
		t.Run(fmt.Sprintf("%dh", hours), func(t *testing.T) {
			msg, err := svc.Extend(context.Background(), nil, "u-7", "D-100", hours)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if int(gotHours) != hours {
				t.Fatalf("payload hours = %v, want %d", gotHours, hours)
			}
			if gotPath != "/diamonds/hold/admin/u-7" {
				t.Fatalf("unexpected path %s", gotPath)
			}
			if msg != "Hold extended" {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
}

func TestExtendDoesNotRecheckMembership(t *testing.T) {
	t.Parallel()

	// The backend is the sole authority on acceptable durations; an
	// off-menu value still goes out and its rejection comes back.
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Invalid hold duration"}`))
	}))

	_, err := svc.Extend(context.Background(), nil, "u-7", "D-100", 36)
	if err == nil || err.Error() != "Invalid hold duration" {
		t.Fatalf("expected backend rejection to surface, got %v", err)
	}
}

func TestExtendValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be sent when selection is incomplete")
	}))

	tests := []struct {
		name     string
		userID   string
		stockRef string
		hours    int
		want     error
	}{
		{"missing user", "", "D-100", 24, ErrUserRequired},
		{"missing stock ref", "u-7", "", 24, ErrStockRefRequired},
		{"missing duration", "u-7", "D-100", 0, ErrDurationRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Extend(context.Background(), nil, tt.userID, tt.stockRef, tt.hours); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
