package wp

import (
	"fmt"
	"net/http"
	"sitescan/pkg/serrors"
)

// ResponseError is returned when the site answers with a non-2xx status.
// Code is the REST error code from the body, when the body carried one.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("unexpected status %d", e.StatusCode)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// Is lets callers match response errors against semantic kinds.
func (e *ResponseError) Is(target error) bool {
	switch target {
	case serrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case serrors.ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case serrors.ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}
