package resource

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a failed backend call: either the transport failed or the
// backend answered with a non-success status.
type NetworkError struct {
	Op         string // HTTP method
	Path       string
	StatusCode int // 0 when the transport failed
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: backend returned status %d", e.Op, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NetworkError carrying a 404.
func IsNotFound(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne) && ne.StatusCode == http.StatusNotFound
}
