//go:build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/ttlock/common"
)

// IFakeFanOut adds additional capabilities to a fake fan-out provider.
type IFakeFanOut interface {
	Published() []*common.MsgLockUpdate
}

// Records every published update in order.
type fakeFanOut struct {
	sync.Mutex
	published []*common.MsgLockUpdate
	out       chan *common.MsgLockUpdate
	closed    bool
}

func (f *fakeFanOut) SubscribeLockUpdates() (int64, chan *common.MsgLockUpdate) {
	return 1, f.out
}

func (f *fakeFanOut) UnSubscribeLockUpdates(int64) {
}

func (f *fakeFanOut) Publish(msg *common.MsgLockUpdate) {
	f.Lock()
	defer f.Unlock()

	f.published = append(f.published, msg)
	if f.closed {
		return
	}

	select {
	case f.out <- msg:
	default:
	}
}

// Close closes subscriber channel, same as dropping a subscriber.
func (f *fakeFanOut) Close() {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return
	}

	f.closed = true
	close(f.out)
}

// Published returns copy of every published update.
func (f *fakeFanOut) Published() []*common.MsgLockUpdate {
	f.Lock()
	defer f.Unlock()

	return append([]*common.MsgLockUpdate{}, f.published...)
}

// FakeNewFanOut creates a new fake fan-out provider.
func FakeNewFanOut() *fakeFanOut {
	return &fakeFanOut{
		out: make(chan *common.MsgLockUpdate, 100),
	}
}
