// Package catalog is the read-only view of the diamond inventory. The
// backend owns status transitions; nothing here is cached.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"gemstore/internal/models"
	"gemstore/internal/upstream"
)

type Service struct {
	api         *upstream.Client
	lg          *zap.SugaredLogger
	lookupLimit int
}

// NewService builds the catalog service. lookupLimit caps the
// similar-diamond fan-out; values below one fall back to a serial walk.
func NewService(api *upstream.Client, lookupLimit int, lg *zap.SugaredLogger) *Service {
	if lookupLimit < 1 {
		lookupLimit = 1
	}
	return &Service{api: api, lg: lg, lookupLimit: lookupLimit}
}

// ListFilter narrows the inventory listing. Zero values mean "any".
type ListFilter struct {
	Shape    string
	Color    string
	Clarity  string
	Cut      string
	Lab      string
	Status   string
	MinCarat float64
	MaxCarat float64
	Page     int
	Limit    int
}

func (f ListFilter) query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("shape", f.Shape)
	set("color", f.Color)
	set("clarity", f.Clarity)
	set("cut", f.Cut)
	set("lab", f.Lab)
	set("status", f.Status)
	if f.MinCarat > 0 {
		q.Set("minCarat", strconv.FormatFloat(f.MinCarat, 'f', -1, 64))
	}
	if f.MaxCarat > 0 {
		q.Set("maxCarat", strconv.FormatFloat(f.MaxCarat, 'f', -1, 64))
	}
	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// List fetches one page of the inventory.
func (s *Service) List(ctx context.Context, creds []*http.Cookie, f ListFilter) ([]models.Diamond, *models.Pagination, error) {
	var diamonds []models.Diamond
	res, err := s.api.Get(ctx, "/diamonds", f.query(), creds, &diamonds)
	if err != nil {
		return nil, nil, err
	}
	return diamonds, res.Pagination, nil
}

// Get fetches a single diamond by stock reference.
func (s *Service) Get(ctx context.Context, creds []*http.Cookie, stockRef string) (models.Diamond, error) {
	if stockRef == "" {
		return models.Diamond{}, fmt.Errorf("stock ref required")
	}
	var d models.Diamond
	if _, err := s.api.Get(ctx, "/diamonds/"+url.PathEscape(stockRef), nil, creds, &d); err != nil {
		return models.Diamond{}, err
	}
	return d, nil
}
