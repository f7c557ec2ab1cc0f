package utils

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// Tests errors formatting and classification.
func TestErrors(t *testing.T) {
	busy := &ErrVendorRejected{Operation: "unlock", Code: -3003, Message: "gateway busy"}
	assert.True(t, busy.IsGatewayBusy())
	assert.Equal(t, "unlock rejected by vendor with code -3003: gateway busy", busy.Error())
	assert.False(t, (&ErrVendorRejected{Code: 1}).IsGatewayBusy())

	inner := errors.New("connection refused")
	tr := &ErrTransport{Operation: "lock", Err: inner}
	assert.Equal(t, inner, errors.Cause(tr))

	auth := &ErrAuth{Attempts: 3, Err: tr}
	assert.Contains(t, auth.Error(), "3 attempt(s)")
	assert.Equal(t, inner, errors.Cause(auth))

	var target *ErrTransport
	assert.True(t, errors.As(errors.Wrap(tr, "wrapped"), &target))
	assert.Equal(t, "lock 12 is unknown", (&ErrUnknownLock{ID: "12"}).Error())
}
