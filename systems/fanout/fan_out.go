// Package fanout contains implementation of pub-sub fanout channels.
package fanout

import (
	"math/rand"
	"sync"
	"time"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/utils"
)

const (
	// Size of the publishing queue.
	inQueueSize = 100
	// Size of every subscriber queue.
	outQueueSize = 50
)

// Max time for a subscriber with the full queue to accept an update.
// Slower subscribers are disconnected.
var deliveryTimeout = time.Second

// Single subscriber.
type subscriber struct {
	id      int64
	updates chan *common.MsgLockUpdate
	done    chan struct{}
}

// Implements IInternalFanOutProvider.
// Updates are delivered to every subscriber in the publishing order.
// Subscriber channels are closed by the delivery goroutine only.
type provider struct {
	sync.Mutex

	inLockUpdates  chan *common.MsgLockUpdate
	outLockUpdates map[int64]*subscriber
	removed        chan *subscriber

	stop     chan struct{}
	stopOnce sync.Once
	stopped  chan struct{}
}

// NewFanOut constructs new FanOut provider.
func NewFanOut() providers.IInternalFanOutProvider {
	p := &provider{
		inLockUpdates:  make(chan *common.MsgLockUpdate, inQueueSize),
		outLockUpdates: make(map[int64]*subscriber),
		removed:        make(chan *subscriber),
		stop:           make(chan struct{}),
		stopped:        make(chan struct{}),
	}

	go p.internalCycle()
	return p
}

// SubscribeLockUpdates allows to subscribe to the lock updates.
func (p *provider) SubscribeLockUpdates() (int64, chan *common.MsgLockUpdate) {
	p.Lock()
	defer p.Unlock()

	c := make(chan *common.MsgLockUpdate, outQueueSize)
	select {
	case <-p.stopped:
		close(c)
		return 0, c
	default:
	}

	id := p.getID()
	p.outLockUpdates[id] = &subscriber{id: id, updates: c, done: make(chan struct{})}
	return id, c
}

// UnSubscribeLockUpdates allows to un-subscribe from the lock updates.
// Subscriber channel gets closed. Channel is also closed when subscriber
// doesn't keep up with updates.
func (p *provider) UnSubscribeLockUpdates(id int64) {
	p.Lock()
	s, ok := p.outLockUpdates[id]
	delete(p.outLockUpdates, id)
	p.Unlock()

	if !ok {
		return
	}

	close(s.done)
	select {
	case p.removed <- s:
	case <-p.stopped:
		close(s.updates)
	}
}

// Publish queues update for delivery.
// Updates published after Close are dropped.
func (p *provider) Publish(update *common.MsgLockUpdate) {
	select {
	case <-p.stop:
		return
	default:
	}

	select {
	case p.inLockUpdates <- update:
	case <-p.stop:
	}
}

// Close stops delivery and closes every subscriber channel.
func (p *provider) Close() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.stopped
}

// Returns random ID.
func (p *provider) getID() int64 {
	for {
		id := utils.TimeNow() + rand.Int63()
		if _, ok := p.outLockUpdates[id]; !ok && 0 != id {
			return id
		}
	}
}

func (p *provider) internalCycle() {
	defer p.closeAll()

	for {
		select {
		case u := <-p.inLockUpdates:
			p.lockUpdates(u)
		case s := <-p.removed:
			close(s.updates)
		case <-p.stop:
			return
		}
	}
}

// Broadcasts lock update.
// Next update is not sent until this one is queued for every subscriber
// or the subscriber is dropped.
func (p *provider) lockUpdates(update *common.MsgLockUpdate) {
	p.Lock()
	subs := make([]*subscriber, 0, len(p.outLockUpdates))
	for _, v := range p.outLockUpdates {
		subs = append(subs, v)
	}
	p.Unlock()

	for _, v := range subs {
		select {
		case v.updates <- update:
			continue
		default:
		}

		timer := time.NewTimer(deliveryTimeout)
		select {
		case v.updates <- update:
		case <-v.done:
		case <-timer.C:
			p.drop(v)
		case <-p.stop:
			timer.Stop()
			return
		}

		timer.Stop()
	}
}

// Disconnects subscriber with the full queue.
// Subscriber which is being un-subscribed is closed through the removed channel.
func (p *provider) drop(s *subscriber) {
	p.Lock()
	current, ok := p.outLockUpdates[s.id]
	if !ok || current != s {
		p.Unlock()
		return
	}

	delete(p.outLockUpdates, s.id)
	p.Unlock()

	close(s.updates)
}

// Closes every remaining subscriber.
func (p *provider) closeAll() {
	p.Lock()
	defer p.Unlock()

	for id, v := range p.outLockUpdates {
		close(v.updates)
		delete(p.outLockUpdates, id)
	}

	close(p.stopped)
}
