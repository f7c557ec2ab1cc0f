// Package config contains configuration files loader.
package config

import (
	"path/filepath"
	"strings"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/systems"
	"github.com/go-home-io/ttlock/systems/logger"
)

// IConfigProvider provides capabilities for loading system configuration.
type IConfigProvider interface {
	Load() chan []byte
}

// ConstructConfig contains data required for a new config provider.
type ConstructConfig struct {
	Location     string
	PluginLogger common.ILoggerProvider
}

// NewConfigProvider constructs a new file system config provider.
func NewConfigProvider(ctor *ConstructConfig) IConfigProvider {
	configLoggerCtor := &logger.ConstructPluginLogger{
		SystemLogger: ctor.PluginLogger,
		Provider:     "fs",
		System:       systems.SysConfig.String(),
	}

	configLogger := logger.NewPluginLogger(configLoggerCtor)
	configLogger.Info("Using File System config loader", common.LogFileToken, ctor.Location)

	return &fsConfig{
		location: ctor.Location,
		logger:   configLogger,
	}
}

// IsValidConfigFileName checks whether file should be loaded.
// Files starting with underscore are skipped.
func IsValidConfigFileName(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "_") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(base))
	return ".yaml" == ext || ".yml" == ext
}
