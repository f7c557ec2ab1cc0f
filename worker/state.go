package worker

import (
	"sort"
	"sync"

	"github.com/go-home-io/ttlock/device"
)

// Worker state definition.
// Keeps track of locks registered with the lock engine.
type workerState struct {
	sync.Mutex
	locks map[int64]*device.LockIdentity
}

// Creating a new worker state object.
func newWorkerState() *workerState {
	return &workerState{
		locks: make(map[int64]*device.LockIdentity),
	}
}

// Stores discovered locks and returns the ones which weren't known before.
func (w *workerState) update(identities []*device.LockIdentity) []*device.LockIdentity {
	w.Lock()
	defer w.Unlock()

	added := make([]*device.LockIdentity, 0)
	for _, v := range identities {
		if _, ok := w.locks[v.LockID]; !ok {
			added = append(added, v)
		}

		w.locks[v.LockID] = v
	}

	return added
}

// Returns sorted IDs of every known lock.
func (w *workerState) ids() []int64 {
	w.Lock()
	defer w.Unlock()

	out := make([]int64, 0, len(w.locks))
	for k := range w.locks {
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
