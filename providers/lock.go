package providers

import (
	"context"

	"github.com/go-home-io/ttlock/device"
)

// ILockProvider defines command and query interface used by the hub.
type ILockProvider interface {
	Register(identity *device.LockIdentity)
	SetTargetState(ctx context.Context, lockID int64, desiredLocked bool) (*device.CommandOutcome, error)
	RefreshCurrentState(ctx context.Context, lockID int64) (bool, error)
	RefreshBatteryLevel(ctx context.Context, lockID int64) (uint8, error)
	GetState(lockID int64) (*device.LockState, bool)
	GetAll() []*device.LockState
	Unload()
}
