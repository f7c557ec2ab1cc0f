// Package secret contains secrets store used by config templates.
package secret

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// File names checked in the config folder, in order.
var secretFiles = []string{"_secrets.yaml", "_secrets.yml"}

// File system secrets store.
type fsSecret struct {
	logger  common.ILoggerProvider
	secrets map[string]string
}

// ConstructSecret has data required for a new secrets provider.
type ConstructSecret struct {
	Logger   common.ILoggerProvider
	Location string
}

// NewSecretProvider constructs a new secrets store provider.
// Missing secrets file results in an empty store.
func NewSecretProvider(ctor *ConstructSecret) (providers.ISecretProvider, error) {
	s := &fsSecret{
		logger:  ctor.Logger,
		secrets: make(map[string]string),
	}

	for _, v := range secretFiles {
		fileName := filepath.Join(ctor.Location, v)
		data, err := ioutil.ReadFile(fileName)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			s.logger.Error("Failed to read secrets file", err, common.LogFileToken, fileName)
			return nil, errors.Wrap(err, "secrets read failed")
		}

		if err := yaml.Unmarshal(data, &s.secrets); err != nil {
			s.logger.Error("Failed to parse secrets file", err, common.LogFileToken, fileName)
			return nil, errors.Wrap(err, "secrets parse failed")
		}

		s.logger.Debug("Loaded secrets file", common.LogFileToken, fileName)
		return s, nil
	}

	s.logger.Debug("Secrets file is not found, using empty store")
	return s, nil
}

// Get returns secret value or an error if it wasn't found.
func (s *fsSecret) Get(name string) (string, error) {
	s.logger.Debug("Requesting secret", common.LogNameToken, name)
	value, ok := s.secrets[name]
	if !ok {
		err := &ErrSecretNotFound{Name: name}
		s.logger.Error("Can't find requested secret", err, common.LogNameToken, name)
		return "", err
	}

	return value, nil
}
