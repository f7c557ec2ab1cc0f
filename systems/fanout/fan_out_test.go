package fanout

import (
	"sync"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/device/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reads channel until it's closed.
type reader struct {
	sync.Mutex
	messages []*common.MsgLockUpdate
	exited   bool
}

func (r *reader) read(c chan *common.MsgLockUpdate) {
	for m := range c {
		r.Lock()
		r.messages = append(r.messages, m)
		r.Unlock()
	}

	r.Lock()
	r.exited = true
	r.Unlock()
}

func (r *reader) state() (int, bool) {
	r.Lock()
	defer r.Unlock()
	return len(r.messages), r.exited
}

// Tests lock updates channels.
func TestLockUpdates(t *testing.T) {
	defer leaktest.Check(t)()

	fo := NewFanOut()
	defer fo.Close()

	id1, c1 := fo.SubscribeLockUpdates()
	id2, c2 := fo.SubscribeLockUpdates()
	assert.NotEqual(t, id1, id2)

	r1 := &reader{}
	r2 := &reader{}
	go r1.read(c1)
	go r2.read(c2)

	fo.Publish(common.NewLockUpdate(1, "front", enums.CharCurrentLockState, true))
	time.Sleep(100 * time.Millisecond)
	n1, _ := r1.state()
	n2, _ := r2.state()
	assert.Equal(t, 1, n1, "channel 1")
	assert.Equal(t, 1, n2, "channel 2")

	fo.UnSubscribeLockUpdates(id1)
	fo.Publish(common.NewLockUpdate(1, "front", enums.CharCurrentLockState, false))
	time.Sleep(100 * time.Millisecond)

	n1, exited1 := r1.state()
	n2, _ = r2.state()
	assert.Equal(t, 1, n1, "unsubscribe channel 1")
	assert.Equal(t, 2, n2, "unsubscribe channel 2")
	assert.True(t, exited1, "exit channel 1")

	fo.UnSubscribeLockUpdates(id2)
	fo.UnSubscribeLockUpdates(id2)
	time.Sleep(100 * time.Millisecond)
	_, exited2 := r2.state()
	assert.True(t, exited2, "exit channel 2")
}

// Tests that updates keep publishing order.
func TestOrdering(t *testing.T) {
	defer leaktest.Check(t)()

	fo := NewFanOut()
	defer fo.Close()

	_, c := fo.SubscribeLockUpdates()
	r := &reader{}
	go r.read(c)

	const total = 500
	for i := 0; i < total; i++ {
		fo.Publish(common.NewLockUpdate(int64(i), "", enums.CharCurrentLockState, 0 == i%2))
	}

	require.Eventually(t, func() bool {
		n, _ := r.state()
		return total == n
	}, 5*time.Second, 10*time.Millisecond)

	r.Lock()
	defer r.Unlock()
	for i, v := range r.messages {
		assert.Equal(t, int64(i), v.ID)
	}
}

// Tests that stuck subscriber can unsubscribe.
func TestUnsubscribeStuckReader(t *testing.T) {
	defer leaktest.Check(t)()

	fo := NewFanOut()
	defer fo.Close()

	id, _ := fo.SubscribeLockUpdates()
	for i := 0; i < outQueueSize+10; i++ {
		fo.Publish(common.NewLockUpdate(int64(i), "", enums.CharBatteryLevel, 10))
	}

	time.Sleep(100 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		fo.UnSubscribeLockUpdates(id)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("unsubscribe is stuck")
	}
}

// Tests closed fan-out.
func TestClose(t *testing.T) {
	defer leaktest.Check(t)()

	fo := NewFanOut()
	_, c := fo.SubscribeLockUpdates()
	r := &reader{}
	go r.read(c)

	fo.Close()
	fo.Close()
	fo.Publish(common.NewLockUpdate(1, "", enums.CharLowBattery, true))

	time.Sleep(100 * time.Millisecond)
	_, exited := r.state()
	assert.True(t, exited)

	_, late := fo.SubscribeLockUpdates()
	_, ok := <-late
	assert.False(t, ok)
}

// Tests that subscriber which never reads doesn't block others.
func TestStalledSubscriberDropped(t *testing.T) {
	defer leaktest.Check(t)()

	prev := deliveryTimeout
	deliveryTimeout = 50 * time.Millisecond
	defer func() { deliveryTimeout = prev }()

	fo := NewFanOut()
	defer fo.Close()

	stalledID, stalled := fo.SubscribeLockUpdates()
	_, c := fo.SubscribeLockUpdates()
	r := &reader{}
	go r.read(c)

	const total = 500
	published := make(chan struct{})
	go func() {
		for i := 0; i < total; i++ {
			fo.Publish(common.NewLockUpdate(int64(i), "", enums.CharCurrentLockState, 0 == i%2))
		}
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(5 * time.Second):
		t.Fatal("publishing is blocked by stalled subscriber")
	}

	require.Eventually(t, func() bool {
		n, _ := r.state()
		return total == n
	}, 5*time.Second, 10*time.Millisecond)

	r.Lock()
	for i, v := range r.messages {
		assert.Equal(t, int64(i), v.ID)
	}
	r.Unlock()

	received := 0
	for range stalled {
		received++
	}
	assert.Equal(t, outQueueSize, received, "stalled queue")

	fo.UnSubscribeLockUpdates(stalledID)
}
