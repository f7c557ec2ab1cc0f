package security

import "fmt"

// ErrNoCredentials defines hub API request without basic credentials.
type ErrNoCredentials struct {
}

// Error formats output.
func (*ErrNoCredentials) Error() string {
	return "request has no basic credentials"
}

// ErrMalformedCredentials defines basic credentials which can't be parsed.
// Payload itself is never reported.
type ErrMalformedCredentials struct {
	Reason string
}

// Error formats output.
func (e *ErrMalformedCredentials) Error() string {
	return "malformed basic credentials: " + e.Reason
}

// ErrUnauthorized defines unknown user or wrong password.
type ErrUnauthorized struct {
	User string
}

// Error formats output.
func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("hub API access denied for %s", e.User)
}
