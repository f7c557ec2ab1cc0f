//go:build !release

package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/go-home-io/ttlock/device"
	"github.com/go-home-io/ttlock/device/enums"
)

// FakeLocks is an in-memory lock engine.
type FakeLocks struct {
	sync.Mutex

	// Err is returned by every vendor-facing operation when set.
	Err error
	// VendorCode makes commands fail with the given code.
	VendorCode *int

	states    map[int64]*device.LockState
	refreshes []int64
	batteries []int64
	unloaded  bool
}

// Register adds a lock.
func (f *FakeLocks) Register(identity *device.LockIdentity) {
	f.Lock()
	defer f.Unlock()

	s, ok := f.states[identity.LockID]
	if !ok {
		s = &device.LockState{LockID: identity.LockID, Locked: true}
		f.states[identity.LockID] = s
	}

	s.Name = identity.Name
	s.Identity = identity
}

// SetTargetState flips stored state unless failure is configured.
func (f *FakeLocks) SetTargetState(_ context.Context, lockID int64,
	_ bool) (*device.CommandOutcome, error) {
	f.Lock()
	defer f.Unlock()

	if nil != f.Err {
		return nil, f.Err
	}

	s := f.get(lockID)
	action := enums.ActionFromState(s.Locked)
	if nil != f.VendorCode {
		return &device.CommandOutcome{
			Action:          action.String(),
			VendorErrorCode: f.VendorCode,
			ResultingLocked: s.Locked,
		}, nil
	}

	s.Locked = action.ResultingState()
	return &device.CommandOutcome{Success: true, Action: action.String(), ResultingLocked: s.Locked}, nil
}

// RefreshCurrentState returns stored state.
func (f *FakeLocks) RefreshCurrentState(_ context.Context, lockID int64) (bool, error) {
	f.Lock()
	defer f.Unlock()

	f.refreshes = append(f.refreshes, lockID)
	if nil != f.Err {
		return false, f.Err
	}

	return f.get(lockID).Locked, nil
}

// RefreshBatteryLevel returns stored battery level.
func (f *FakeLocks) RefreshBatteryLevel(_ context.Context, lockID int64) (uint8, error) {
	f.Lock()
	defer f.Unlock()

	f.batteries = append(f.batteries, lockID)
	if nil != f.Err {
		return 0, f.Err
	}

	return f.get(lockID).BatteryLevel, nil
}

// GetState returns copy of a registered lock state.
func (f *FakeLocks) GetState(lockID int64) (*device.LockState, bool) {
	f.Lock()
	defer f.Unlock()

	s, ok := f.states[lockID]
	if !ok {
		return nil, false
	}

	c := *s
	return &c, true
}

// GetAll returns copies of every lock state.
func (f *FakeLocks) GetAll() []*device.LockState {
	f.Lock()
	defer f.Unlock()

	out := make([]*device.LockState, 0, len(f.states))
	for _, v := range f.states {
		c := *v
		out = append(out, &c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LockID < out[j].LockID })
	return out
}

// Unload marks engine as unloaded.
func (f *FakeLocks) Unload() {
	f.Lock()
	defer f.Unlock()
	f.unloaded = true
}

// Refreshes returns every refreshed lock id.
func (f *FakeLocks) Refreshes() []int64 {
	f.Lock()
	defer f.Unlock()
	return append([]int64{}, f.refreshes...)
}

// BatteryRefreshes returns every lock id with refreshed battery.
func (f *FakeLocks) BatteryRefreshes() []int64 {
	f.Lock()
	defer f.Unlock()
	return append([]int64{}, f.batteries...)
}

// Unloaded checks whether engine was unloaded.
func (f *FakeLocks) Unloaded() bool {
	f.Lock()
	defer f.Unlock()
	return f.unloaded
}

func (f *FakeLocks) get(lockID int64) *device.LockState {
	s, ok := f.states[lockID]
	if !ok {
		s = &device.LockState{LockID: lockID, Locked: true}
		f.states[lockID] = s
	}

	return s
}

// FakeNewLocks creates a new fake lock engine.
func FakeNewLocks(states ...*device.LockState) *FakeLocks {
	f := &FakeLocks{
		states: make(map[int64]*device.LockState),
	}

	for _, v := range states {
		f.states[v.LockID] = v
	}

	return f
}
