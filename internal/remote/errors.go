package remote

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RemoteError is returned when the service answers with a non-2xx status.
type RemoteError struct {
	Status     int
	StatusText string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %d - %s", e.Status, e.StatusText)
}

// newRemoteError builds a RemoteError from a response. resp.Status carries
// the code as a prefix ("403 Forbidden"), which is stripped.
func newRemoteError(resp *http.Response) *RemoteError {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &RemoteError{Status: resp.StatusCode, StatusText: text}
}

// IsStatus reports whether err is a RemoteError with the given status.
func IsStatus(err error, status int) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == status
}
