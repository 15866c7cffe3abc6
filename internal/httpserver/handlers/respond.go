package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gemstore/internal/guard"
	"gemstore/internal/models"
	"gemstore/internal/upstream"
)

// envelope mirrors the backend's response convention so the UI sees one
// shape end to end. Redirect carries the global 401 navigation hint.
type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       any                `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Redirect   string             `json:"redirect,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(env)
}

func respondData(w http.ResponseWriter, data any, pagination *models.Pagination) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: pagination})
}

func respondMessage(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, envelope{Success: false, Message: msg})
}

// respondError maps backend failures to the client. A 401 anywhere but
// the login page adds the global redirect hint; on the login page the
// rejection propagates as-is so failed logins do not loop.
func respondError(w http.ResponseWriter, r *http.Request, lg *zap.SugaredLogger, err error) {
	var ue *upstream.Error
	if errors.As(err, &ue) {
		env := envelope{Success: false, Message: ue.Message}
		status := ue.Status
		switch {
		case status == http.StatusUnauthorized:
			if !guard.IsLoginPath(r.URL.Path) {
				env.Redirect = "/login"
			}
		case status == 0:
			status = http.StatusBadGateway
		}
		respondJSON(w, status, env)
		return
	}
	lg.Errorw("unhandled error", "path", r.URL.Path, "error", err)
	respondJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: upstream.FallbackMessage})
}
