package server

import "fmt"

// ErrBadRequest defines generic request error.
type ErrBadRequest struct {
	Reason string
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	if "" == e.Reason {
		return "bad request"
	}

	return fmt.Sprintf("bad request: %s", e.Reason)
}
