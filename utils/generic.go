package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// TimeNow returns epoch UTC.
func TimeNow() int64 {
	return time.Now().UTC().Unix()
}

// TimeNowMillis returns epoch UTC in milliseconds.
// Vendor API expects this value as a request date.
func TimeNowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// ParseLockID transforms lock ID received from the hub into vendor ID.
func ParseLockID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrUnknownLock{ID: raw}
	}

	return id, nil
}

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigsDir returns default config directory which is cwd/configs.
func GetDefaultConfigsDir() string {
	if ConfigDir != "" {
		return ConfigDir
	}

	return fmt.Sprintf("%s/configs", GetCurrentWorkingDir())
}

// ConfigDir allows to re-write default config directory.
var ConfigDir = ""
