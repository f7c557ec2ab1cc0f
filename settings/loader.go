// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/systems"
	"github.com/go-home-io/ttlock/systems/config"
	"github.com/go-home-io/ttlock/systems/discovery"
	"github.com/go-home-io/ttlock/systems/fanout"
	"github.com/go-home-io/ttlock/systems/lock"
	"github.com/go-home-io/ttlock/systems/logger"
	"github.com/go-home-io/ttlock/systems/secret"
	"github.com/go-home-io/ttlock/systems/security"
	"github.com/go-home-io/ttlock/systems/token"
	"github.com/go-home-io/ttlock/systems/vendor"
	"github.com/go-home-io/ttlock/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Describes config record for the bridge itself.
	configGoHomeBridge = "bridge"
	// Describes config record for the vendor API.
	configVendorTTLock = "ttlock"
	// Describes config record for locks.
	configDeviceLock = "lock/ttlock"
	// Describes config record for basic auth users.
	configSecurityBasic = "basic"
	// Describes file system secrets store.
	configSecretFS = "fs"

	// Optional htpasswd file in the config folder.
	usersFileName = "_users"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	ConfigDir string `short:"c" long:"config" description:"Config files location. Defaults to ./configs."`
	LogLevel  string `short:"l" long:"log-level" description:"Log level override: debug, info, warning or error."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   string
	Provider string
	Config   []byte
}

// System settings.
type settingsProvider struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	validator providers.IValidatorProvider
	fanOut    providers.IInternalFanOutProvider

	vendor           providers.IVendorProvider
	tokens           providers.ITokenProvider
	locks            providers.ILockProvider
	discovery        providers.IDiscoveryProvider
	securityProvider providers.ISecurityProvider

	configDir string
	logLevel  string

	bSettings   *providers.BridgeSettings
	vSettings   *providers.VendorSettings
	lSettings   *providers.LockSettings
	secSettings *providers.SecuritySettings
}

// Load system configuration and constructs every bridge system.
func Load(options *StartUpOptions) (providers.ISettingsProvider, error) {
	settings := &settingsProvider{
		configDir: options.ConfigDir,
		logLevel:  options.LogLevel,
		logger:    logger.NewLoggerProvider(&logger.ConstructLogger{LevelOverride: options.LogLevel}),
	}

	if "" == settings.configDir {
		settings.configDir = utils.GetDefaultConfigsDir()
	}

	settings.validator = utils.NewValidator(settings.logger)
	secretProvider, err := secret.NewSecretProvider(&secret.ConstructSecret{
		Logger:   settings.PluginLogger(systems.SysSecret, configSecretFS),
		Location: settings.configDir,
	})
	if err != nil {
		return nil, err
	}

	templateProvider := newTemplateProvider(settings.logger, secretProvider)

	configProvider := config.NewConfigProvider(&config.ConstructConfig{
		Location:     settings.configDir,
		PluginLogger: settings.logger,
	})

	dataChan := configProvider.Load()
	if nil == dataChan {
		return nil, errors.Errorf("failed to read configs from %s", settings.configDir)
	}

	allProviders := make([]*rawProvider, 0)
	var loadErr error
	for fileData := range dataChan {
		provs, err := settings.loadFile(fileData, templateProvider)
		if err != nil && nil == loadErr {
			loadErr = err
		}

		allProviders = append(allProviders, provs...)
	}

	if loadErr != nil {
		return nil, loadErr
	}

	allProviders = settings.loadLoggerProvider(allProviders)
	for _, v := range allProviders {
		settings.parseProvider(v)
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	settings.construct()
	return settings, nil
}

// Processes single yaml file.
func (s *settingsProvider) loadFile(fileData []byte, templateProvider ITemplateProvider) ([]*rawProvider, error) {
	fileData, err := templateProvider.Process(fileData)
	if err != nil {
		s.logger.Error("Failed to process config template", err)
		return nil, err
	}

	provs := make([]*rawProvider, 0)
	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			s.logger.Error("Failed to parse config file", err)
			return provs, errors.Wrap(err, "yaml decode failed")
		}

		componentType := ""
		componentProvider := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = strings.ToLower(ct)
		}

		if componentType == "" || componentProvider == "" {
			s.logger.Warn("Failed to parse a record in the config file: system or provider is not defined")
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, componentType,
				common.LogProviderToken, componentProvider)
			continue
		}

		provs = append(provs, &rawProvider{
			Provider: componentProvider,
			System:   componentType,
			Config:   byteData,
		})
	}

	return provs, nil
}

// Loads logger configuration.
func (s *settingsProvider) loadLoggerProvider(provs []*rawProvider) []*rawProvider {
	left := make([]*rawProvider, 0, len(provs))
	for _, v := range provs {
		if v.System != systems.SysLogger.String() {
			left = append(left, v)
			continue
		}

		s.logger = logger.NewLoggerProvider(&logger.ConstructLogger{
			Provider:      v.Provider,
			RawConfig:     v.Config,
			LevelOverride: s.logLevel,
		})
	}

	s.validator.SetLogger(s.PluginLogger(systems.SysGoHome, "validator"))
	return left
}

// Processes single provider config.
func (s *settingsProvider) parseProvider(provider *rawProvider) {
	s.logger.Debug("Processing config", common.LogProviderToken, provider.Provider,
		common.LogSystemToken, provider.System)

	sys, err := systems.SystemTypeString(provider.System)
	if err != nil {
		s.logger.Warn("Unknown provider's system", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return
	}

	switch {
	case systems.SysGoHome == sys && configGoHomeBridge == provider.Provider:
		s.bSettings = &providers.BridgeSettings{}
		err = s.unmarshal(provider, s.bSettings)
	case systems.SysVendor == sys && configVendorTTLock == provider.Provider:
		s.vSettings = &providers.VendorSettings{}
		err = s.unmarshal(provider, s.vSettings)
	case systems.SysDevice == sys && (configDeviceLock == provider.Provider || configVendorTTLock == provider.Provider):
		s.lSettings = &providers.LockSettings{}
		err = s.unmarshal(provider, s.lSettings)
	case systems.SysSecurity == sys && configSecurityBasic == provider.Provider:
		s.secSettings = &providers.SecuritySettings{}
		err = s.unmarshal(provider, s.secSettings)
	default:
		s.logger.Warn("Unknown config record", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}

	if err != nil {
		s.logger.Error("Failed to load config record", err, common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}
}

// Un-marshals config record, duplicated records override previous ones.
// Defaults are applied first, so explicitly configured zero values are kept.
func (s *settingsProvider) unmarshal(provider *rawProvider, out interface{}) error {
	if !s.validator.Defaults(out) {
		return errors.Wrap(&utils.ErrInvalidConfig{}, "failed to set defaults")
	}

	if err := yaml.Unmarshal(provider.Config, out); err != nil {
		return errors.Wrap(err, "yaml un-marshal failed")
	}

	return nil
}

// Validates whether all necessary settings are present.
func (s *settingsProvider) validate() error {
	if nil == s.vSettings {
		s.logger.Error("Vendor settings are not defined", &utils.ErrInvalidConfig{},
			common.LogSystemToken, systems.SysVendor.String())
		return errors.Wrap(&utils.ErrInvalidConfig{}, "vendor settings are missing")
	}

	if !s.validator.Validate(s.vSettings) {
		return errors.Wrap(&utils.ErrInvalidConfig{}, "vendor settings are incorrect")
	}

	if nil == s.bSettings {
		s.logger.Warn("Bridge settings are not defined, using the default ones")
		s.bSettings = &providers.BridgeSettings{}
		s.validator.Defaults(s.bSettings)
	}

	if !s.validator.Validate(s.bSettings) {
		return errors.Wrap(&utils.ErrInvalidConfig{}, "bridge settings are incorrect")
	}

	if nil == s.lSettings {
		s.logger.Warn("Lock settings are not defined, using the default ones")
		s.lSettings = &providers.LockSettings{}
		s.validator.Defaults(s.lSettings)
	}

	if !s.validator.Validate(s.lSettings) {
		return errors.Wrap(&utils.ErrInvalidConfig{}, "lock settings are incorrect")
	}

	if nil == s.secSettings {
		s.secSettings = &providers.SecuritySettings{}
	}

	if !s.validator.Validate(s.secSettings) {
		return errors.Wrap(&utils.ErrInvalidConfig{}, "security settings are incorrect")
	}

	return nil
}

// Constructs bridge systems.
func (s *settingsProvider) construct() {
	s.cron = utils.NewCron()
	s.fanOut = fanout.NewFanOut()

	s.vendor = vendor.NewVendorProvider(&vendor.ConstructVendor{
		Logger:   s.PluginLogger(systems.SysVendor, configVendorTTLock),
		Settings: s.vSettings,
	})

	s.tokens = token.NewTokenStore(&token.ConstructTokenStore{
		Logger:        s.PluginLogger(systems.SysToken, configVendorTTLock),
		Vendor:        s.vendor,
		Credentials:   s.vSettings.Credentials(),
		MaxRetries:    s.vSettings.MaximumTokenRetry,
		RetryInterval: s.vSettings.RetryInterval(),
	})

	s.locks = lock.NewLockEngine(&lock.ConstructLockEngine{
		Logger:          s.PluginLogger(systems.SysDevice, configDeviceLock),
		Vendor:          s.vendor,
		Tokens:          s.tokens,
		FanOut:          s.fanOut,
		MaxAPIRetry:     s.vSettings.MaximumAPIRetry,
		BatteryLowLevel: s.lSettings.BatteryLowLevel,
	})

	s.discovery = discovery.NewDiscoveryProvider(&discovery.ConstructDiscovery{
		Logger:   s.PluginLogger(systems.SysDiscovery, configVendorTTLock),
		Vendor:   s.vendor,
		Tokens:   s.tokens,
		Settings: s.lSettings,
	})

	s.securityProvider = security.NewSecurityProvider(&security.ConstructSecurityProvider{
		Logger:    s.PluginLogger(systems.SysSecurity, configSecurityBasic),
		Settings:  s.secSettings,
		UsersFile: filepath.Join(s.configDir, usersFileName),
	})
}
