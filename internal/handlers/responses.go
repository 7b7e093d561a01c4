package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of an error answered to a non-browser client.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse maps err to a status and body. echo.HTTPError keeps its
// code; anything else is a 500 with a generic message.
func NewErrorResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, ErrorResponse{Code: codeFor(he.Code), Message: msg}
	}
	return http.StatusInternalServerError, ErrorResponse{
		Code:    codeFor(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusInternalServerError:
		return "internal"
	default:
		return "error"
	}
}

// Health answers liveness probes.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
