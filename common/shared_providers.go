// Package common contains data shared by every bridge system.
package common

import (
	"github.com/go-home-io/ttlock/device/enums"
)

// ILoggerProvider defines logger provider which is passed to every system.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
}

// MsgLockUpdate contains characteristics pushed to the hub.
type MsgLockUpdate struct {
	ID    int64                                 `json:"id"`
	Name  string                                `json:"name"`
	State map[enums.Characteristic]interface{} `json:"state"`
}

// NewLockUpdate constructs an update message with a single characteristic.
func NewLockUpdate(id int64, name string, c enums.Characteristic, value interface{}) *MsgLockUpdate {
	return &MsgLockUpdate{
		ID:    id,
		Name:  name,
		State: map[enums.Characteristic]interface{}{c: value},
	}
}
