package auth

import (
	"context"
	"net/http"

	"gemstore/internal/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Principal is the resolved session identity for one request. Cookies
// are the backend credentials attached to outgoing upstream calls.
type Principal struct {
	SessionID string
	User      models.User
	Cookies   []*http.Cookie
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
