package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gemstore/internal/auth"
	"gemstore/internal/session"
)

func setSessionCookie(w http.ResponseWriter, sessionID string) error {
	tok, err := auth.Sign(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(auth.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(svc *session.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, session.ErrCredentialsRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		if err := setSessionCookie(w, sess.ID); err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{
			Success:  true,
			Message:  "Login successful",
			Data:     map[string]any{"user": sess.User},
			Redirect: "/",
		})
	}
}

func Register(svc *session.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		msg, err := svc.Register(r.Context(), req)
		switch {
		case errors.Is(err, session.ErrMissingFields):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}

type verifyOTPReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func VerifyOTP(svc *session.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyOTPReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		sess, err := svc.VerifyOTP(r.Context(), req.Email, req.OTP)
		switch {
		case errors.Is(err, session.ErrOTPFormat), errors.Is(err, session.ErrMissingFields):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		if err := setSessionCookie(w, sess.ID); err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{
			Success:  true,
			Message:  "Account verified",
			Data:     map[string]any{"user": sess.User},
			Redirect: "/",
		})
	}
}

// Logout never fails visibly: local state clears and navigation goes to
// the login page whatever the backend said.
func Logout(svc *session.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p, ok := auth.FromContext(r.Context()); ok {
			svc.Logout(r.Context(), p.SessionID)
		}
		clearSessionCookie(w)
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Signed out", Redirect: "/login"})
	}
}

func Profile(svc *session.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		user, err := svc.Profile(r.Context(), p.SessionID)
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, user, nil)
	}
}
