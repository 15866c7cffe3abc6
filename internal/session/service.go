package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gemstore/internal/models"
	"gemstore/internal/upstream"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrOTPFormat           = errors.New("enter the 4-digit verification code")
	ErrMissingFields       = errors.New("please fill in all required fields")
)

// Service owns the login/register/verify/logout round trips and the
// local session lifecycle. All credential checks, OTP generation and
// account-status gating happen in the backend.
type Service struct {
	api   *upstream.Client
	store *Store
	lg    *zap.SugaredLogger
}

func NewService(api *upstream.Client, store *Store, lg *zap.SugaredLogger) *Service {
	return &Service{api: api, store: store, lg: lg}
}

// ValidOTP reports whether s is exactly four numeric characters. The
// check runs before any request is sent.
func ValidOTP(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type loginData struct {
	User models.User `json:"user"`
}

// Login posts the credentials, captures the backend session cookies and
// installs the returned user without a second profile round trip.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return Session{}, ErrCredentialsRequired
	}
	var data loginData
	res, err := s.api.Post(ctx, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil, &data)
	if err != nil {
		return Session{}, err
	}
	if err := data.User.Validate(); err != nil {
		s.lg.Errorw("backend returned malformed user", "error", err)
		return Session{}, fmt.Errorf("login: %w", err)
	}
	return s.store.Create(data.User, res.Cookies), nil
}

// RegisterInput is the business-customer registration payload.
type RegisterInput struct {
	Email        string              `json:"email"`
	Password     string              `json:"password"`
	Name         string              `json:"name"`
	CustomerData models.CustomerData `json:"customerData"`
}

// Register submits a registration; the backend answers by sending an
// OTP to the given address. No session exists until the OTP verifies.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return "", ErrMissingFields
	}
	if in.CustomerData.CompanyName == "" || in.CustomerData.PhoneNumber == "" {
		return "", ErrMissingFields
	}
	res, err := s.api.Post(ctx, "/users/register", in, nil, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// VerifyOTP confirms a registration code and opens the session the
// backend grants on success.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return Session{}, ErrMissingFields
	}
	if !ValidOTP(otp) {
		return Session{}, ErrOTPFormat
	}
	var data loginData
	res, err := s.api.Post(ctx, "/users/verify-otp", map[string]string{
		"email": email,
		"otp":   otp,
	}, nil, &data)
	if err != nil {
		return Session{}, err
	}
	if err := data.User.Validate(); err != nil {
		s.lg.Errorw("backend returned malformed user", "error", err)
		return Session{}, fmt.Errorf("verify otp: %w", err)
	}
	return s.store.Create(data.User, res.Cookies), nil
}

// Profile refetches the current user and refreshes the cached snapshot.
func (s *Service) Profile(ctx context.Context, sessionID string) (models.User, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return models.User{}, upstream.ErrUnauthorized
	}
	var user models.User
	if _, err := s.api.Get(ctx, "/users/profile", nil, sess.Cookies, &user); err != nil {
		return models.User{}, err
	}
	if err := user.Validate(); err != nil {
		s.lg.Errorw("backend returned malformed user", "error", err)
		return models.User{}, fmt.Errorf("profile: %w", err)
	}
	s.store.SetUser(sessionID, user)
	return user, nil
}

// Logout tells the backend, then clears local state no matter what the
// backend said. Logout never fails from the caller's point of view.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	if sess, ok := s.store.Get(sessionID); ok {
		if _, err := s.api.Post(ctx, "/users/logout", nil, sess.Cookies, nil); err != nil {
			s.lg.Warnw("backend logout failed, clearing session anyway", "error", err)
		}
	}
	s.store.Delete(sessionID)
}
