// Package admindir is the back-office directory: pending business
// registrations, customer approval, and admin account management.
// Mutations are single-shot; listings are always refetched afterwards
// so the view converges on the backend rather than splicing locally.
package admindir

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"gemstore/internal/models"
	"gemstore/internal/upstream"
)

var (
	ErrUserIDRequired = errors.New("user id required")
	ErrMissingFields  = errors.New("email, password and name are required")
)

type Service struct {
	api *upstream.Client
	lg  *zap.SugaredLogger
}

func NewService(api *upstream.Client, lg *zap.SugaredLogger) *Service {
	return &Service{api: api, lg: lg}
}

// Page is one directory listing page with its metadata.
type Page struct {
	Users      []models.User      `json:"users"`
	Pagination *models.Pagination `json:"pagination"`
}

func pagingQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
}

func (s *Service) list(ctx context.Context, creds []*http.Cookie, path string, page, limit int) (Page, error) {
	var users []models.User
	res, err := s.api.Get(ctx, path, pagingQuery(page, limit), creds, &users)
	if err != nil {
		return Page{}, err
	}
	for i := range users {
		if err := users[i].Validate(); err != nil {
			s.lg.Warnw("directory entry failed validation", "index", i, "error", err)
		}
	}
	return Page{Users: users, Pagination: res.Pagination}, nil
}

// Users lists every registered account.
func (s *Service) Users(ctx context.Context, creds []*http.Cookie, page, limit int) (Page, error) {
	return s.list(ctx, creds, "/users", page, limit)
}

// PendingCustomers lists business registrations awaiting review.
func (s *Service) PendingCustomers(ctx context.Context, creds []*http.Cookie, page, limit int) (Page, error) {
	return s.list(ctx, creds, "/users/customer-data-pending", page, limit)
}

// ApproveCustomer approves a pending registration, then refetches the
// given page of the pending list.
func (s *Service) ApproveCustomer(ctx context.Context, creds []*http.Cookie, userID string, page, limit int) (string, Page, error) {
	return s.review(ctx, creds, userID, "approve-customer-data", nil, page, limit)
}

// RejectCustomer rejects a pending registration with an optional
// reason, then refetches the given page of the pending list.
func (s *Service) RejectCustomer(ctx context.Context, creds []*http.Cookie, userID, reason string, page, limit int) (string, Page, error) {
	var body map[string]string
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return s.review(ctx, creds, userID, "reject-customer-data", body, page, limit)
}

func (s *Service) review(ctx context.Context, creds []*http.Cookie, userID, action string, body any, page, limit int) (string, Page, error) {
	if userID == "" {
		return "", Page{}, ErrUserIDRequired
	}
	res, err := s.api.Post(ctx, "/users/"+url.PathEscape(userID)+"/"+action, body, creds, nil)
	if err != nil {
		return "", Page{}, err
	}
	refreshed, err := s.PendingCustomers(ctx, creds, page, limit)
	if err != nil {
		// The mutation itself succeeded; surface the stale view rather
		// than failing the action.
		s.lg.Warnw("pending list refetch failed", "error", err)
		return res.Message, Page{}, nil
	}
	return res.Message, refreshed, nil
}

// Admins lists back-office accounts.
func (s *Service) Admins(ctx context.Context, creds []*http.Cookie, page, limit int) (Page, error) {
	return s.list(ctx, creds, "/users/admin/list", page, limit)
}

// CreateAdmin provisions a back-office account.
func (s *Service) CreateAdmin(ctx context.Context, creds []*http.Cookie, email, password, name string) (string, error) {
	if email == "" || password == "" || name == "" {
		return "", ErrMissingFields
	}
	res, err := s.api.Post(ctx, "/users/admin/create", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, creds, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// DeleteAdmin removes a back-office account.
func (s *Service) DeleteAdmin(ctx context.Context, creds []*http.Cookie, id string) (string, error) {
	if id == "" {
		return "", ErrUserIDRequired
	}
	res, err := s.api.Do(ctx, upstream.Request{
		Method:  http.MethodDelete,
		Path:    "/users/admin/" + url.PathEscape(id),
		Cookies: creds,
	}, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}
