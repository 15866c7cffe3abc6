package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gemstore/internal/auth"
	"gemstore/internal/services/hold"
)

type placeHoldReq struct {
	StockRef string `json:"stockRef"`
}

// PlaceHold is the self-service hold; the backend picks the duration.
func PlaceHold(svc *hold.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeHoldReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		p, _ := auth.FromContext(r.Context())
		res, err := svc.Place(r.Context(), p.Cookies, req.StockRef)
		switch {
		case errors.Is(err, hold.ErrStockRefRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: res.Message, Data: res})
	}
}

// HoldOptions feeds the admin duration dropdown.
func HoldOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondData(w, map[string]any{"hours": hold.AllowedHours}, nil)
	}
}

type extendHoldReq struct {
	StockRef string `json:"stockRef"`
	Hours    int    `json:"hours"`
}

// ExtendHold is the admin on-behalf-of-customer variant with an
// explicit duration.
func ExtendHold(svc *hold.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extendHoldReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		p, _ := auth.FromContext(r.Context())
		msg, err := svc.Extend(r.Context(), p.Cookies, chi.URLParam(r, "userID"), req.StockRef, req.Hours)
		switch {
		case errors.Is(err, hold.ErrUserRequired),
			errors.Is(err, hold.ErrStockRefRequired),
			errors.Is(err, hold.ErrDurationRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}
