// Package hold requests and extends time-boxed diamond reservations.
// The backend owns expiry arithmetic and conflict resolution; this
// service only shapes the requests and relays the outcome.
package hold

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gemstore/internal/upstream"
)

// AllowedHours is the duration set offered to admins when extending a
// hold. The UI restricts selection to this set; the request itself is
// forwarded as selected, with the backend as the sole authority on
// acceptable durations.
var AllowedHours = []int{24, 48, 72, 120, 168, 240}

var (
	ErrStockRefRequired = errors.New("a stock reference is required")
	ErrUserRequired     = errors.New("select a customer for the hold")
	ErrDurationRequired = errors.New("select a hold duration")
)

type Service struct {
	api *upstream.Client
	lg  *zap.SugaredLogger
}

func NewService(api *upstream.Client, lg *zap.SugaredLogger) *Service {
	return &Service{api: api, lg: lg}
}

// PlaceResult is the backend's answer to a self-service hold; duration
// is implicit and chosen server-side.
type PlaceResult struct {
	Message  string `json:"message"`
	StockRef string `json:"stockRef"`
}

// Place requests a hold on a diamond for the calling user.
func (s *Service) Place(ctx context.Context, creds []*http.Cookie, stockRef string) (PlaceResult, error) {
	if stockRef == "" {
		return PlaceResult{}, ErrStockRefRequired
	}
	res, err := s.api.Post(ctx, "/diamonds/hold", map[string]string{"stockRef": stockRef}, creds, nil)
	if err != nil {
		return PlaceResult{}, err
	}
	return PlaceResult{Message: res.Message, StockRef: stockRef}, nil
}

// Extend places or extends a hold on behalf of a customer for an
// explicit number of hours. A target user and a duration must be
// selected; set membership is not re-checked here.
func (s *Service) Extend(ctx context.Context, creds []*http.Cookie, userID, stockRef string, hours int) (string, error) {
	if userID == "" {
		return "", ErrUserRequired
	}
	if stockRef == "" {
		return "", ErrStockRefRequired
	}
	if hours <= 0 {
		return "", ErrDurationRequired
	}
	res, err := s.api.Post(ctx, "/diamonds/hold/admin/"+userID, map[string]any{
		"stockRef": stockRef,
		"hours":    hours,
	}, creds, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}
