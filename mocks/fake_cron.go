//go:build !release

package mocks

import "sync"

// IFakeCron adds additional capabilities to a fake cron provider.
type IFakeCron interface {
	Specs() []string
	RunAll()
	Stopped() bool
}

type fakeCron struct {
	sync.Mutex
	specs   []string
	funcs   map[int]func()
	stopped bool
}

func (f *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	f.Lock()
	defer f.Unlock()

	f.specs = append(f.specs, spec)
	id := len(f.specs)
	f.funcs[id] = cmd
	return id, nil
}

func (f *fakeCron) RemoveFunc(id int) {
	f.Lock()
	defer f.Unlock()

	delete(f.funcs, id)
}

func (f *fakeCron) Stop() {
	f.Lock()
	defer f.Unlock()

	f.stopped = true
}

// Specs returns every registered schedule.
func (f *fakeCron) Specs() []string {
	f.Lock()
	defer f.Unlock()

	return append([]string{}, f.specs...)
}

// RunAll invokes every registered job once.
func (f *fakeCron) RunAll() {
	f.Lock()
	jobs := make([]func(), 0, len(f.funcs))
	for i := 1; i <= len(f.specs); i++ {
		if fn, ok := f.funcs[i]; ok {
			jobs = append(jobs, fn)
		}
	}
	f.Unlock()

	for _, v := range jobs {
		v()
	}
}

// Stopped checks whether cron was stopped.
func (f *fakeCron) Stopped() bool {
	f.Lock()
	defer f.Unlock()

	return f.stopped
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{
		funcs: make(map[int]func()),
	}
}
