package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gemstore/internal/auth"
	"gemstore/internal/services/admindir"
)

func ListUsers(svc *admindir.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		page, err := svc.Users(r.Context(), p.Cookies, intQuery(r, "page"), intQuery(r, "limit"))
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, page.Users, page.Pagination)
	}
}

func PendingCustomers(svc *admindir.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		page, err := svc.PendingCustomers(r.Context(), p.Cookies, intQuery(r, "page"), intQuery(r, "limit"))
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, page.Users, page.Pagination)
	}
}

// ApproveCustomer answers with the refetched current page so the review
// queue stays consistent with the backend.
func ApproveCustomer(svc *admindir.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		msg, page, err := svc.ApproveCustomer(r.Context(), p.Cookies, chi.URLParam(r, "id"), intQuery(r, "page"), intQuery(r, "limit"))
		switch {
		case errors.Is(err, admindir.ErrUserIDRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: page.Users, Pagination: page.Pagination})
	}
}

func RejectCustomer(svc *admindir.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Reason string `json:"reason"`
		}
		// An empty body means rejection without a reason.
		_ = json.NewDecoder(r.Body).Decode(&req)

		p, _ := auth.FromContext(r.Context())
		msg, page, err := svc.RejectCustomer(r.Context(), p.Cookies, chi.URLParam(r, "id"), req.Reason, intQuery(r, "page"), intQuery(r, "limit"))
		switch {
		case errors.Is(err, admindir.ErrUserIDRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: page.Users, Pagination: page.Pagination})
	}
}

func ListAdmins(svc *admindir.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		page, err := svc.Admins(r.Context(), p.Cookies, intQuery(r, "page"), intQuery(r, "limit"))
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, page.Users, page.Pagination)
	}
}

func CreateAdmin(svc *admindir.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		p, _ := auth.FromContext(r.Context())
		msg, err := svc.CreateAdmin(r.Context(), p.Cookies, req.Email, req.Password, req.Name)
		switch {
		case errors.Is(err, admindir.ErrMissingFields):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}

func DeleteAdmin(svc *admindir.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		msg, err := svc.DeleteAdmin(r.Context(), p.Cookies, chi.URLParam(r, "id"))
		switch {
		case errors.Is(err, admindir.ErrUserIDRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}
