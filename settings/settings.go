package settings

import (
	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/systems"
	"github.com/go-home-io/ttlock/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger decorated with system and provider names.
func (s *settingsProvider) PluginLogger(system systems.SystemType, provider string) common.ILoggerProvider {
	return logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		System:       system.String(),
		Provider:     provider,
	})
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// FanOut returns fan out channel.
func (s *settingsProvider) FanOut() providers.IInternalFanOutProvider {
	return s.fanOut
}

// Vendor returns vendor API client.
func (s *settingsProvider) Vendor() providers.IVendorProvider {
	return s.vendor
}

// Tokens returns access token store.
func (s *settingsProvider) Tokens() providers.ITokenProvider {
	return s.tokens
}

// Locks returns lock engine.
func (s *settingsProvider) Locks() providers.ILockProvider {
	return s.locks
}

// Discovery returns lock discovery provider.
func (s *settingsProvider) Discovery() providers.IDiscoveryProvider {
	return s.discovery
}

// Security returns a security provider.
func (s *settingsProvider) Security() providers.ISecurityProvider {
	return s.securityProvider
}

// BridgeSettings returns hub API server settings.
func (s *settingsProvider) BridgeSettings() *providers.BridgeSettings {
	return s.bSettings
}

// LockSettings returns lock settings.
func (s *settingsProvider) LockSettings() *providers.LockSettings {
	return s.lSettings
}
