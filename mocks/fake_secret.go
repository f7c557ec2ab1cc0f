//go:build !release

package mocks

import (
	"errors"

	"github.com/go-home-io/ttlock/providers"
)

type fakeSecret struct {
	secrets map[string]string
}

func (f *fakeSecret) Get(name string) (string, error) {
	v, ok := f.secrets[name]
	if !ok {
		return "", errors.New("not found")
	}

	return v, nil
}

// FakeNewSecretStore creates a new fake secrets store.
func FakeNewSecretStore(secrets map[string]string) providers.ISecretProvider {
	return &fakeSecret{
		secrets: secrets,
	}
}
