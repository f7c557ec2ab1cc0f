//go:build !release

package mocks

import (
	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/systems"
)

// IFakeSettings adds additional capabilities to a fake settings provider.
type IFakeSettings interface {
	providers.ISettingsProvider

	AddLocks(providers.ILockProvider)
	AddDiscovery(providers.IDiscoveryProvider)
	AddSecurity(providers.ISecurityProvider)
	AddBridgeSettings(*providers.BridgeSettings)
	AddLockSettings(*providers.LockSettings)
}

type fakeSettings struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	fanOut    providers.IInternalFanOutProvider
	vendor    providers.IVendorProvider
	tokens    providers.ITokenProvider
	locks     providers.ILockProvider
	discovery providers.IDiscoveryProvider
	security  providers.ISecurityProvider
	bridge    *providers.BridgeSettings
	lock      *providers.LockSettings
}

func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) PluginLogger(systems.SystemType, string) common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

func (f *fakeSettings) Validator() providers.IValidatorProvider {
	return FakeNewValidator(true)
}

func (f *fakeSettings) FanOut() providers.IInternalFanOutProvider {
	return f.fanOut
}

func (f *fakeSettings) Vendor() providers.IVendorProvider {
	return f.vendor
}

func (f *fakeSettings) Tokens() providers.ITokenProvider {
	return f.tokens
}

func (f *fakeSettings) Locks() providers.ILockProvider {
	return f.locks
}

func (f *fakeSettings) Discovery() providers.IDiscoveryProvider {
	return f.discovery
}

func (f *fakeSettings) Security() providers.ISecurityProvider {
	return f.security
}

func (f *fakeSettings) BridgeSettings() *providers.BridgeSettings {
	return f.bridge
}

func (f *fakeSettings) LockSettings() *providers.LockSettings {
	return f.lock
}

func (f *fakeSettings) AddLocks(l providers.ILockProvider) {
	f.locks = l
}

func (f *fakeSettings) AddDiscovery(d providers.IDiscoveryProvider) {
	f.discovery = d
}

func (f *fakeSettings) AddSecurity(s providers.ISecurityProvider) {
	f.security = s
}

func (f *fakeSettings) AddBridgeSettings(s *providers.BridgeSettings) {
	f.bridge = s
}

func (f *fakeSettings) AddLockSettings(s *providers.LockSettings) {
	f.lock = s
}

// FakeNewSettings creates a new fake settings provider.
func FakeNewSettings(logCallback func(string)) IFakeSettings {
	return &fakeSettings{
		logger:    FakeNewLogger(logCallback),
		cron:      FakeNewCron(),
		fanOut:    FakeNewFanOut(),
		vendor:    FakeNewVendor(),
		tokens:    FakeNewTokens("token", nil),
		locks:     FakeNewLocks(),
		discovery: FakeNewDiscovery(),
		security:  FakeNewSecurityProvider(false, true),
		bridge:    &providers.BridgeSettings{Port: 9999},
		lock: &providers.LockSettings{
			BatteryLowLevel:   20,
			UpdateInterval:    60,
			DiscoveryInterval: 600,
			PageSize:          100,
		},
	}
}
