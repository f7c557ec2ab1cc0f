// Package lock contains lock command and query engine.
package lock

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/device"
	"github.com/go-home-io/ttlock/device/enums"
	"github.com/go-home-io/ttlock/providers"
)

// Implements ILockProvider.
type engine struct {
	sync.Mutex

	logger          common.ILoggerProvider
	vendor          providers.IVendorProvider
	tokens          providers.ITokenProvider
	fanOut          providers.IInternalFanOutProvider
	maxAPIRetry     int
	batteryLowLevel uint8

	locks map[int64]*lockEntry

	ctx      context.Context
	cancel   context.CancelFunc
	bg       sync.WaitGroup
	unloaded bool
}

// ConstructLockEngine has data required for a new lock engine.
type ConstructLockEngine struct {
	Logger          common.ILoggerProvider
	Vendor          providers.IVendorProvider
	Tokens          providers.ITokenProvider
	FanOut          providers.IInternalFanOutProvider
	MaxAPIRetry     int
	BatteryLowLevel uint8
}

// NewLockEngine constructs a new lock engine.
func NewLockEngine(ctor *ConstructLockEngine) providers.ILockProvider {
	ctx, cancel := context.WithCancel(context.Background())
	return &engine{
		logger:          ctor.Logger,
		vendor:          ctor.Vendor,
		tokens:          ctor.Tokens,
		fanOut:          ctor.FanOut,
		maxAPIRetry:     ctor.MaxAPIRetry,
		batteryLowLevel: ctor.BatteryLowLevel,
		locks:           make(map[int64]*lockEntry),
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Register adds lock metadata, creating lock state if necessary.
func (e *engine) Register(identity *device.LockIdentity) {
	l := e.get(identity.LockID)
	l.setIdentity(identity)

	e.logger.Debug("Registered lock", common.LogLockIDToken, lockID(identity.LockID),
		common.LogLockNameToken, l.getName())
}

// GetState returns copy of a known lock state.
func (e *engine) GetState(lockID int64) (*device.LockState, bool) {
	e.Lock()
	l, ok := e.locks[lockID]
	e.Unlock()

	if !ok {
		return nil, false
	}

	return l.snapshot(), true
}

// GetAll returns copies of every known lock state, ordered by id.
func (e *engine) GetAll() []*device.LockState {
	e.Lock()
	all := make([]*lockEntry, 0, len(e.locks))
	for _, v := range e.locks {
		all = append(all, v)
	}
	e.Unlock()

	out := make([]*device.LockState, 0, len(all))
	for _, v := range all {
		out = append(out, v.snapshot())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LockID < out[j].LockID })
	return out
}

// Unload cancels background refreshes and waits for them to finish.
func (e *engine) Unload() {
	e.Lock()
	e.unloaded = true
	e.Unlock()

	e.cancel()
	e.bg.Wait()
}

// Returns lock entry, creating it on first reference.
func (e *engine) get(id int64) *lockEntry {
	e.Lock()
	defer e.Unlock()

	l, ok := e.locks[id]
	if !ok {
		l = newLockEntry(id)
		e.locks[id] = l
	}

	return l
}

// Runs function in background unless engine is unloaded.
func (e *engine) background(fn func(ctx context.Context)) bool {
	e.Lock()
	defer e.Unlock()

	if e.unloaded {
		return false
	}

	e.bg.Add(1)
	go func() {
		defer e.bg.Done()
		fn(e.ctx)
	}()

	return true
}

// Pushes characteristic update to the hub.
func (e *engine) publish(l *lockEntry, c enums.Characteristic, value interface{}) {
	e.fanOut.Publish(common.NewLockUpdate(l.id, l.getName(), c, value))
}

// Returns log-friendly lock id.
func lockID(id int64) string {
	return strconv.FormatInt(id, 10)
}
