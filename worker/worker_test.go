package worker

import (
	"errors"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/go-home-io/ttlock/device"
	"github.com/go-home-io/ttlock/mocks"
	"github.com/go-home-io/ttlock/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakes struct {
	settings  mocks.IFakeSettings
	locks     *mocks.FakeLocks
	discovery *mocks.FakeDiscovery
	cron      mocks.IFakeCron
}

func (f *fakes) messages() []string {
	return f.settings.SystemLogger().(interface{ Messages() []string }).Messages()
}

func getFakes() *fakes {
	f := &fakes{
		settings: mocks.FakeNewSettings(nil),
		locks:    mocks.FakeNewLocks(),
		discovery: mocks.FakeNewDiscovery(
			&device.LockIdentity{LockID: 1, Name: "front"},
			&device.LockIdentity{LockID: 2, Name: "back"}),
	}

	f.settings.AddLocks(f.locks)
	f.settings.AddDiscovery(f.discovery)
	f.cron = f.settings.Cron().(mocks.IFakeCron)
	return f
}

func refreshed(f *fakes, count int) func() bool {
	return func() bool {
		return count == len(f.locks.Refreshes())
	}
}

// Tests initial discovery.
func TestStart(t *testing.T) {
	defer leaktest.Check(t)()

	f := getFakes()
	w := NewWorker(f.settings)
	w.Start()
	defer w.Stop()

	all := f.locks.GetAll()
	require.Equal(t, 2, len(all))
	assert.Equal(t, "front", all[0].Name)
	assert.Equal(t, "back", all[1].Name)

	assert.Eventually(t, refreshed(f, 2), time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"@every 60s", "@every 600s"}, f.cron.Specs())

	calls, forced := f.discovery.Calls()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, forced)
}

// Tests scheduled jobs.
func TestScheduledJobs(t *testing.T) {
	defer leaktest.Check(t)()

	f := getFakes()
	w := NewWorker(f.settings)
	w.Start()
	defer w.Stop()

	require.Eventually(t, refreshed(f, 2), time.Second, 10*time.Millisecond)

	f.discovery.Lock()
	f.discovery.Locks = append(f.discovery.Locks, &device.LockIdentity{LockID: 3, Name: "garage"})
	f.discovery.Unlock()

	f.cron.RunAll()

	assert.Eventually(t, refreshed(f, 5), time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, len(f.locks.GetAll()))
	assert.Equal(t, []int64{1, 2, 3}, w.state.ids())

	calls, forced := f.discovery.Calls()
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, forced)
}

// Tests that zero intervals disable jobs.
func TestDisabledJobs(t *testing.T) {
	defer leaktest.Check(t)()

	f := getFakes()
	f.settings.AddLockSettings(&providers.LockSettings{})
	w := NewWorker(f.settings)
	w.Start()
	defer w.Stop()

	assert.Empty(t, f.cron.Specs())
}

// Tests failed discovery.
func TestDiscoveryFailure(t *testing.T) {
	defer leaktest.Check(t)()

	f := getFakes()
	f.discovery.Err = errors.New("rejected")
	w := NewWorker(f.settings)
	w.Start()

	assert.Empty(t, f.locks.GetAll())
	assert.Contains(t, f.messages(), "Failed to discover locks")

	f.cron.RunAll()
	w.Stop()
	assert.Empty(t, f.locks.Refreshes())
}

// Tests that nothing is refreshed after stop.
func TestStop(t *testing.T) {
	defer leaktest.Check(t)()

	f := getFakes()
	w := NewWorker(f.settings)
	w.Start()
	require.Eventually(t, refreshed(f, 2), time.Second, 10*time.Millisecond)

	w.Stop()
	f.cron.RunAll()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, len(f.locks.Refreshes()))
}
