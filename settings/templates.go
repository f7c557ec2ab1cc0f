package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/pkg/errors"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Template engine provider.
type provider struct {
	Logger    common.ILoggerProvider
	Secret    providers.ISecretProvider
	functions template.FuncMap
}

// Constructs a new template engine.
func newTemplateProvider(logger common.ILoggerProvider, secret providers.ISecretProvider) *provider {
	provider := &provider{
		Logger: logger,
		Secret: secret,
	}

	provider.functions = template.FuncMap{
		"env": provider.getEnvVariable,
		"sec": provider.getSecret,
	}

	return provider
}

// Process applies template functions to the config file,
// so credentials can be read from environment variables or secrets store.
func (p *provider) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("ttlock").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse template")
	}

	b := bytes.Buffer{}
	if err := tpl.Execute(&b, nil); err != nil {
		return nil, errors.Wrap(err, "failed to execute template")
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (p *provider) getEnvVariable(name string) string {
	p.Logger.Debug("Template is requesting environment variable", common.LogNameToken, name)
	return os.Getenv(name)
}

// Returns secret from the secrets store.
// Unknown secret fails template execution.
func (p *provider) getSecret(name string) (string, error) {
	p.Logger.Debug("Template is requesting secret", common.LogNameToken, name)
	return p.Secret.Get(name)
}
