package providers

import (
	"context"

	"github.com/go-home-io/ttlock/device"
)

// IDiscoveryProvider defines vendor lock list provider.
type IDiscoveryProvider interface {
	Discover(ctx context.Context, force bool) ([]*device.LockIdentity, error)
	Get(lockID int64) (*device.LockIdentity, bool)
}
