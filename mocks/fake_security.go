//go:build !release

package mocks

import (
	"errors"

	"github.com/go-home-io/ttlock/providers"
)

type fakeSecurity struct {
	enabled bool
	allow   bool
}

func (f *fakeSecurity) IsEnabled() bool {
	return f.enabled
}

func (f *fakeSecurity) GetUser(map[string][]string) (string, error) {
	if f.allow {
		return "test", nil
	}

	return "", errors.New("not found")
}

// FakeNewSecurityProvider creates a new fake security provider.
func FakeNewSecurityProvider(enabled bool, allow bool) providers.ISecurityProvider {
	return &fakeSecurity{
		enabled: enabled,
		allow:   allow,
	}
}
