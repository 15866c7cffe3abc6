package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gemstore/internal/auth"
	"gemstore/internal/services/cart"
)

func GetCart(svc *cart.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		c, err := svc.List(r.Context(), p.Cookies)
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, c, nil)
	}
}

type addToCartReq struct {
	StockRef string `json:"stockRef"`
}

func AddToCart(svc *cart.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addToCartReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		p, _ := auth.FromContext(r.Context())
		c, msg, err := svc.Add(r.Context(), p.Cookies, req.StockRef)
		switch {
		case errors.Is(err, cart.ErrStockRefRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: c})
	}
}
