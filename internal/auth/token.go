package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the gateway's own session cookie, distinct from the
// backend cookies held server-side per session.
const CookieName = "gemstore_session"

func parseTTL() time.Duration {
	if s := os.Getenv("SESSION_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return 24 * time.Hour
}

// TTL is the session cookie lifetime, also used for the cookie Max-Age.
func TTL() time.Duration { return parseTTL() }

// Sign issues the session cookie value for a session ID.
func Sign(sessionID string) (string, error) {
	key := []byte(os.Getenv("SESSION_SECRET"))
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": time.Now().Add(parseTTL()).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// Verify checks a session cookie value and returns the session ID.
func Verify(tokenStr string) (string, error) {
	key := []byte(os.Getenv("SESSION_SECRET"))
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return "", errors.New("invalid session token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, _ := mapc["sub"].(string)
	if sub == "" {
		return "", errors.New("missing session id")
	}
	return sub, nil
}
