package utils

import (
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"gopkg.in/go-playground/validator.v9"
)

// Validator implementation.
type validatorProvider struct {
	sync.Mutex
	validator *validator.Validate
	logger    common.ILoggerProvider
}

// NewValidator constructs a new validator.
func NewValidator(logger common.ILoggerProvider) providers.IValidatorProvider {
	val := &validatorProvider{
		logger: logger,
	}
	v := validator.New()
	loadNewValidator(v, logger, "percent", percent)
	loadNewValidator(v, logger, "port", port)

	val.validator = v
	return val
}

// SetLogger updates the logger.
// Since logger is loaded after first init, we need to re-assign it.
func (v *validatorProvider) SetLogger(logger common.ILoggerProvider) {
	v.Lock()
	defer v.Unlock()

	v.logger = logger
}

// Defaults sets default values of a config structure.
func (v *validatorProvider) Defaults(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	if err := defaults.Set(object); err != nil {
		v.logger.Error("Failed to set default field values", err)
		return false
	}

	return true
}

// Validate performs validation of a config structure.
func (v *validatorProvider) Validate(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	err := v.validator.Struct(object)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			v.logger.Error("Failed to validate structure", err)
			return false
		}

		for _, e := range validationErrors {
			v.logger.Warn("Validation error", common.LogFieldToken, e.Namespace())
		}

		return false
	}
	return true
}

// Percent type validation.
func percent(fl validator.FieldLevel) bool {
	return fl.Field().Uint() <= 100
}

// Port type validation.
func port(fl validator.FieldLevel) bool {
	val := fl.Field().Int()
	return val > 0 && val <= 65535
}

// Attempt to register a new validator
func loadNewValidator(validator *validator.Validate, logger common.ILoggerProvider,
	name string, function validator.Func) {
	if err := validator.RegisterValidation(name, function); err != nil {
		logger.Error("Failed to register validator type", err, "type", name)
	}
}
