package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired indicates that the refresh cycle failed and the session
// was terminated. The transport clears stored credentials before returning
// this error; the caller is expected to re-authenticate.
var ErrSessionExpired = errors.New("session expired")

// Error represents a non-2xx response from the server, carrying the
// human-readable message from the error payload when the server sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// AsError extracts a server *Error from an error chain
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}
