package providers

import (
	"time"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/systems"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger(system systems.SystemType, provider string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	FanOut() IInternalFanOutProvider
	Vendor() IVendorProvider
	Tokens() ITokenProvider
	Locks() ILockProvider
	Discovery() IDiscoveryProvider
	Security() ISecurityProvider
	BridgeSettings() *BridgeSettings
	LockSettings() *LockSettings
}

// BridgeSettings has configured data for the hub API server.
type BridgeSettings struct {
	Port         int `yaml:"port" validate:"port" default:"8000"`
	DelayedStart int `yaml:"delayedStart" validate:"gte=0"`
}

// VendorSettings has configured data for the vendor cloud API.
type VendorSettings struct {
	ClientID     string `yaml:"clientId" validate:"required"`
	ClientSecret string `yaml:"clientSecret" validate:"required"`
	Username     string `yaml:"username" validate:"required"`
	Password     string `yaml:"password" validate:"required"`

	TokenURI string `yaml:"tokenUri" validate:"required,url" default:"https://api.ttlock.com/oauth2/token"`
	APIURI   string `yaml:"apiUri" validate:"required,url" default:"https://euapi.ttlock.com/v3"`

	MaximumTokenRetry  int `yaml:"maximumTokenRetry" validate:"gte=1,lte=10" default:"3"`
	TokenRetryInterval int `yaml:"tokenRetryInterval" validate:"gte=0,lte=60000" default:"1000"`
	MaximumAPIRetry    int `yaml:"maximumApiRetry" validate:"gte=1,lte=10" default:"3"`
	RequestTimeout     int `yaml:"requestTimeout" validate:"gte=1,lte=120" default:"10"`
}

// Credentials returns account data used for obtaining access token.
func (v *VendorSettings) Credentials() *VendorCredentials {
	return &VendorCredentials{
		ClientID:     v.ClientID,
		ClientSecret: v.ClientSecret,
		Username:     v.Username,
		Password:     v.Password,
	}
}

// RetryInterval returns pause between token attempts.
func (v *VendorSettings) RetryInterval() time.Duration {
	return time.Duration(v.TokenRetryInterval) * time.Millisecond
}

// Timeout returns single vendor request timeout.
func (v *VendorSettings) Timeout() time.Duration {
	return time.Duration(v.RequestTimeout) * time.Second
}

// LockSettings has configured data for exposed locks.
type LockSettings struct {
	BatteryLowLevel   uint8    `yaml:"batteryLowLevel" validate:"percent" default:"20"`
	UpdateInterval    int      `yaml:"updateInterval" validate:"gte=0" default:"60"`
	DiscoveryInterval int      `yaml:"discoveryInterval" validate:"gte=0" default:"600"`
	PageSize          int      `yaml:"pageSize" validate:"gte=1,lte=1000" default:"100"`
	Include           []string `yaml:"include"`
	Exclude           []string `yaml:"exclude"`
}
