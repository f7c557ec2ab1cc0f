package lock

import (
	"strconv"
	"sync"

	"github.com/go-home-io/ttlock/device"
)

// Cached lock state.
// Vendor operations are serialized with op, fields are guarded by the embedded mutex.
type lockEntry struct {
	sync.RWMutex
	op sync.Mutex

	id       int64
	name     string
	identity *device.LockIdentity

	locked       bool
	batteryLevel uint8
	lowBattery   bool
	batteryKnown bool
}

// Returns new entry with default state.
// Lock is considered locked until confirmed otherwise.
func newLockEntry(id int64) *lockEntry {
	return &lockEntry{
		id:     id,
		name:   strconv.FormatInt(id, 10),
		locked: true,
	}
}

// Updates lock metadata.
func (l *lockEntry) setIdentity(identity *device.LockIdentity) {
	l.Lock()
	defer l.Unlock()

	l.identity = identity
	if "" != identity.Name {
		l.name = identity.Name
	}
}

func (l *lockEntry) getLocked() bool {
	l.RLock()
	defer l.RUnlock()
	return l.locked
}

func (l *lockEntry) setLocked(locked bool) {
	l.Lock()
	defer l.Unlock()
	l.locked = locked
}

func (l *lockEntry) getName() string {
	l.RLock()
	defer l.RUnlock()
	return l.name
}

// Returns current battery reading.
func (l *lockEntry) getBattery() batteryReading {
	l.RLock()
	defer l.RUnlock()

	return batteryReading{Known: l.batteryKnown, Level: l.batteryLevel, Low: l.lowBattery}
}

func (l *lockEntry) setBattery(r batteryReading) {
	l.Lock()
	defer l.Unlock()

	l.batteryKnown = r.Known
	l.batteryLevel = r.Level
	l.lowBattery = r.Low
}

// Returns copy of the state.
func (l *lockEntry) snapshot() *device.LockState {
	l.RLock()
	defer l.RUnlock()

	return &device.LockState{
		LockID:       l.id,
		Name:         l.name,
		Locked:       l.locked,
		BatteryLevel: l.batteryLevel,
		LowBattery:   l.lowBattery,
		Identity:     l.identity,
	}
}

// Battery data pushed to the hub.
type batteryReading struct {
	Known bool
	Level uint8
	Low   bool
}
