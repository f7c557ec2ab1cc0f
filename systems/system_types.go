// Package systems contains the list of bridge systems.
package systems

import "fmt"

// SystemType is an enum describing known system types.
type SystemType int

const (
	// SysGoHome describes bridge process itself.
	SysGoHome SystemType = iota
	// SysLogger describes logger system.
	SysLogger
	// SysConfig describes config provider system.
	SysConfig
	// SysVendor describes vendor cloud API system.
	SysVendor
	// SysToken describes access token store.
	SysToken
	// SysDevice describes lock device system.
	SysDevice
	// SysDiscovery describes lock discovery system.
	SysDiscovery
	// SysSecurity describes hub API security system.
	SysSecurity
	// SysServer describes hub API server.
	SysServer
	// SysWorker describes background polling worker.
	SysWorker
	// SysSecret describes secrets store.
	SysSecret
)

var systemTypeNames = []string{
	"go-home",
	"logger",
	"config",
	"vendor",
	"token",
	"device",
	"discovery",
	"security",
	"server",
	"worker",
	"secret",
}

// String returns system name.
func (i SystemType) String() string {
	if i < 0 || int(i) >= len(systemTypeNames) {
		return fmt.Sprintf("SystemType(%d)", int(i))
	}

	return systemTypeNames[i]
}

// SystemTypeString returns enum value from its string representation.
func SystemTypeString(s string) (SystemType, error) {
	for i, v := range systemTypeNames {
		if v == s {
			return SystemType(i), nil
		}
	}

	return 0, fmt.Errorf("%s does not belong to SystemType values", s)
}
