// Package cart reads and mutates the server-held cart. The gateway
// keeps no cart state of its own; every view is a fresh snapshot.
package cart

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gemstore/internal/models"
	"gemstore/internal/upstream"
)

var ErrStockRefRequired = errors.New("a stock reference is required")

type Service struct {
	api *upstream.Client
	lg  *zap.SugaredLogger
}

func NewService(api *upstream.Client, lg *zap.SugaredLogger) *Service {
	return &Service{api: api, lg: lg}
}

// List fetches the current cart snapshot.
func (s *Service) List(ctx context.Context, creds []*http.Cookie) (models.Cart, error) {
	var cart models.Cart
	if _, err := s.api.Get(ctx, "/diamonds/cart", nil, creds, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// Add puts a diamond in the cart, then returns the refetched snapshot
// so the caller never splices local state.
func (s *Service) Add(ctx context.Context, creds []*http.Cookie, stockRef string) (models.Cart, string, error) {
	if stockRef == "" {
		return models.Cart{}, "", ErrStockRefRequired
	}
	res, err := s.api.Post(ctx, "/diamonds/cart/add", map[string]string{"stockRef": stockRef}, creds, nil)
	if err != nil {
		return models.Cart{}, "", err
	}
	cart, err := s.List(ctx, creds)
	if err != nil {
		return models.Cart{}, "", err
	}
	return cart, res.Message, nil
}
