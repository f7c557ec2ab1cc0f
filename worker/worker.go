// Package worker contains background lock polling logic.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/device"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/systems"
)

const (
	// Worker logger provider name.
	loggerProvider = "ttlock"
)

// TTLockWorker discovers vendor locks and keeps their state up to date.
type TTLockWorker struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	state   *workerState
	polling int32
	jobs    []int

	ctx        context.Context
	cancel     context.CancelFunc
	background sync.WaitGroup
	bgMutex    sync.Mutex
}

// NewWorker constructs a lock worker.
// settings holds details from parsed yaml and all necessary helper-providers.
func NewWorker(settings providers.ISettingsProvider) *TTLockWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &TTLockWorker{
		Settings: settings,
		Logger:   settings.PluginLogger(systems.SysWorker, loggerProvider),
		state:    newWorkerState(),
		jobs:     make([]int, 0),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start performs initial discovery and schedules periodic jobs.
func (w *TTLockWorker) Start() {
	w.discover(true)

	lockSettings := w.Settings.LockSettings()
	w.schedule(lockSettings.UpdateInterval, w.poll)
	w.schedule(lockSettings.DiscoveryInterval, func() {
		w.discover(true)
	})

	w.Logger.Info("Successfully started ttlock worker",
		"locks", strconv.Itoa(len(w.state.ids())))
}

// Stop removes scheduled jobs and waits for running refreshes.
func (w *TTLockWorker) Stop() {
	for _, v := range w.jobs {
		w.Settings.Cron().RemoveFunc(v)
	}

	w.bgMutex.Lock()
	w.cancel()
	w.bgMutex.Unlock()

	w.background.Wait()
}

// Schedules job with the given interval in seconds.
// Zero interval disables the job.
func (w *TTLockWorker) schedule(interval int, job func()) {
	if interval <= 0 {
		return
	}

	id, err := w.Settings.Cron().AddFunc(fmt.Sprintf("@every %ds", interval), job)
	if err != nil {
		w.Logger.Error("Failed to schedule job", err, "interval", strconv.Itoa(interval))
		return
	}

	w.jobs = append(w.jobs, id)
}

// Loads vendor lock list and registers new locks with the lock engine.
func (w *TTLockWorker) discover(force bool) {
	identities, err := w.Settings.Discovery().Discover(w.ctx, force)
	if err != nil {
		w.Logger.Error("Failed to discover locks", err)
		return
	}

	added := w.state.update(identities)
	for _, v := range identities {
		w.Settings.Locks().Register(v)
	}

	for _, v := range added {
		w.Logger.Info("Discovered a new lock", common.LogLockIDToken, strconv.FormatInt(v.LockID, 10),
			common.LogLockNameToken, v.Name)
		w.refresh(v)
	}
}

// Refreshes every known lock.
// Poll is skipped if previous one is still in progress.
func (w *TTLockWorker) poll() {
	if !atomic.CompareAndSwapInt32(&w.polling, 0, 1) {
		w.Logger.Debug("Previous poll is still in progress, skipping")
		return
	}

	var wg sync.WaitGroup
	for _, v := range w.state.ids() {
		id := v
		wg.Add(1)
		w.run(func(ctx context.Context) {
			defer wg.Done()
			w.Settings.Locks().RefreshCurrentState(ctx, id) // nolint: errcheck, gosec
		}, wg.Done)
	}

	go func() {
		wg.Wait()
		atomic.StoreInt32(&w.polling, 0)
	}()
}

// Requests current state of a newly discovered lock.
func (w *TTLockWorker) refresh(identity *device.LockIdentity) {
	w.run(func(ctx context.Context) {
		w.Settings.Locks().RefreshCurrentState(ctx, identity.LockID) // nolint: errcheck, gosec
	}, nil)
}

// Runs function in background unless worker was stopped.
// skipped is invoked instead when function won't run.
func (w *TTLockWorker) run(fn func(ctx context.Context), skipped func()) {
	w.bgMutex.Lock()
	defer w.bgMutex.Unlock()

	if w.ctx.Err() != nil {
		if nil != skipped {
			skipped()
		}
		return
	}

	w.background.Add(1)
	go func() {
		defer w.background.Done()
		fn(w.ctx)
	}()
}
