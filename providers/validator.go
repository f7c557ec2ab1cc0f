package providers

import "github.com/go-home-io/ttlock/common"

// IValidatorProvider defines yaml structures validator logic.
type IValidatorProvider interface {
	SetLogger(logger common.ILoggerProvider)
	// Defaults fills zero fields with their default values.
	// Must be called before un-marshalling, so configured zeros are kept.
	Defaults(interface{}) bool
	Validate(interface{}) bool
}
