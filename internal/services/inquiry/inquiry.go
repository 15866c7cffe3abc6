// Package inquiry submits diamond questions and general contact forms
// to the backend, including multipart file attachments.
package inquiry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"gemstore/internal/models"
	"gemstore/internal/upstream"
)

var (
	ErrStockRefRequired = errors.New("a stock reference is required")
	ErrMessageRequired  = errors.New("please enter your question")
	ErrContactRequired  = errors.New("name, email and message are required")
)

type Service struct {
	api *upstream.Client
	lg  *zap.SugaredLogger
}

func NewService(api *upstream.Client, lg *zap.SugaredLogger) *Service {
	return &Service{api: api, lg: lg}
}

// Submit posts a free-text question tied to a stock reference.
func (s *Service) Submit(ctx context.Context, creds []*http.Cookie, stockRef, message string) (string, error) {
	if stockRef == "" {
		return "", ErrStockRefRequired
	}
	if message == "" {
		return "", ErrMessageRequired
	}
	res, err := s.api.Post(ctx, "/diamonds/queries", map[string]string{
		"stockRef": stockRef,
		"message":  message,
	}, creds, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// Attachment is one uploaded file relayed as-is to the backend.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// FormInput is a general contact-form submission.
type FormInput struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	Attachments []Attachment
}

// SubmitForm relays a contact form upstream. With attachments the
// payload goes out as multipart/form-data, otherwise as JSON.
func (s *Service) SubmitForm(ctx context.Context, creds []*http.Cookie, in FormInput) (string, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return "", ErrContactRequired
	}

	if len(in.Attachments) == 0 {
		res, err := s.api.Post(ctx, "/forms", map[string]string{
			"name":    in.Name,
			"email":   in.Email,
			"phone":   in.Phone,
			"message": in.Message,
		}, creds, nil)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"message": in.Message,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return "", err
		}
	}
	for _, att := range in.Attachments {
		part, err := mw.CreateFormFile("attachments", att.Filename)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(part, att.Content); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	res, err := s.api.Do(ctx, upstream.Request{
		Method:      http.MethodPost,
		Path:        "/forms",
		RawBody:     &buf,
		ContentType: mw.FormDataContentType(),
		Cookies:     creds,
	}, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// ListForms pages through submitted forms for back-office review.
func (s *Service) ListForms(ctx context.Context, creds []*http.Cookie, page, limit int) ([]models.FormSubmission, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	var forms []models.FormSubmission
	res, err := s.api.Get(ctx, "/forms", q, creds, &forms)
	if err != nil {
		return nil, nil, err
	}
	return forms, res.Pagination, nil
}

// UpdateForm patches a submission's review status.
func (s *Service) UpdateForm(ctx context.Context, creds []*http.Cookie, id, status string) (string, error) {
	if id == "" {
		return "", errors.New("form id required")
	}
	res, err := s.api.Do(ctx, upstream.Request{
		Method:  http.MethodPatch,
		Path:    "/forms/" + url.PathEscape(id),
		Body:    map[string]string{"status": status},
		Cookies: creds,
	}, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// DeleteForm removes a submission.
func (s *Service) DeleteForm(ctx context.Context, creds []*http.Cookie, id string) (string, error) {
	if id == "" {
		return "", errors.New("form id required")
	}
	res, err := s.api.Do(ctx, upstream.Request{
		Method:  http.MethodDelete,
		Path:    "/forms/" + url.PathEscape(id),
		Cookies: creds,
	}, nil)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}
