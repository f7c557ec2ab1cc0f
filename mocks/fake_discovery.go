//go:build !release

package mocks

import (
	"context"
	"sync"

	"github.com/go-home-io/ttlock/device"
)

// FakeDiscovery returns fixed lock list.
type FakeDiscovery struct {
	sync.Mutex

	Locks []*device.LockIdentity
	Err   error

	calls  int
	forced int
}

// Discover returns configured locks.
func (f *FakeDiscovery) Discover(_ context.Context, force bool) ([]*device.LockIdentity, error) {
	f.Lock()
	defer f.Unlock()

	f.calls++
	if force {
		f.forced++
	}

	if nil != f.Err {
		return nil, f.Err
	}

	return f.Locks, nil
}

// Get returns configured lock.
func (f *FakeDiscovery) Get(lockID int64) (*device.LockIdentity, bool) {
	f.Lock()
	defer f.Unlock()

	for _, v := range f.Locks {
		if v.LockID == lockID {
			return v, true
		}
	}

	return nil, false
}

// Calls returns number of discoveries and forced discoveries.
func (f *FakeDiscovery) Calls() (int, int) {
	f.Lock()
	defer f.Unlock()
	return f.calls, f.forced
}

// FakeNewDiscovery creates a new fake discovery provider.
func FakeNewDiscovery(locks ...*device.LockIdentity) *FakeDiscovery {
	return &FakeDiscovery{
		Locks: locks,
	}
}
