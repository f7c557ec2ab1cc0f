package utils

import (
	"fmt"

	"github.com/go-home-io/ttlock/device/enums"
)

// ErrAuth defines exhausted access token acquisition.
type ErrAuth struct {
	Attempts int
	Err      error
}

// Error formats output.
func (e *ErrAuth) Error() string {
	return fmt.Sprintf("failed to get access token after %d attempt(s): %v", e.Attempts, e.Err)
}

// Cause returns the last authentication error.
func (e *ErrAuth) Cause() error {
	return e.Err
}

// ErrVendorRejected defines non-zero vendor error code.
type ErrVendorRejected struct {
	Operation string
	Code      int
	Message   string
}

// Error formats output.
func (e *ErrVendorRejected) Error() string {
	return fmt.Sprintf("%s rejected by vendor with code %d: %s", e.Operation, e.Code, e.Message)
}

// IsGatewayBusy checks whether gateway was busy processing another request.
func (e *ErrVendorRejected) IsGatewayBusy() bool {
	return e.Code == enums.GatewayBusyCode
}

// ErrTransport defines network, timeout or decoding failure.
type ErrTransport struct {
	Operation string
	Err       error
}

// Error formats output.
func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

// Cause returns underlying error.
func (e *ErrTransport) Cause() error {
	return e.Err
}

// ErrUnknownLock defines unknown lock error.
type ErrUnknownLock struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownLock) Error() string {
	return fmt.Sprintf("lock %s is unknown", e.ID)
}

// ErrInvalidConfig defines wrong configuration error.
type ErrInvalidConfig struct {
}

// Error formats output.
func (*ErrInvalidConfig) Error() string {
	return "config validation error"
}
