package upstream

import (
	"errors"
	"net/http"
)

// ErrUnauthorized marks an expired or missing backend session. The
// transport layer turns it into the global redirect-to-login behavior.
var ErrUnauthorized = errors.New("unauthorized")

// FallbackMessage is shown when the backend gives no message of its own.
const FallbackMessage = "Something went wrong. Please try again."

// Error is a failed backend call normalized to a user-facing message.
type Error struct {
	Status  int // HTTP status, 0 when the request never got a response
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// MessageOf extracts the user-facing message from a backend error,
// falling back to the generic string for anything unexpected.
func MessageOf(err error) string {
	var ue *Error
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return FallbackMessage
}
