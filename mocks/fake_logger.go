//go:build !release

package mocks

import "sync"

// Fake logger.
type fakeLogger struct {
	sync.Mutex
	callback func(string)
	messages []string
}

// Prints debug level message.
func (p *fakeLogger) Debug(msg string, fields ...string) {
	p.record(msg)
}

// Prints info level message.
func (p *fakeLogger) Info(msg string, fields ...string) {
	p.record(msg)
}

// Prints warning level message.
func (p *fakeLogger) Warn(msg string, fields ...string) {
	p.record(msg)
}

// Prints error level message.
func (p *fakeLogger) Error(msg string, err error, fields ...string) {
	p.record(msg)
}

// Prints fatal level message.
func (p *fakeLogger) Fatal(msg string, err error, fields ...string) {
	p.record(msg)
}

// Messages returns every recorded message.
func (p *fakeLogger) Messages() []string {
	p.Lock()
	defer p.Unlock()

	out := make([]string, len(p.messages))
	copy(out, p.messages)
	return out
}

func (p *fakeLogger) record(msg string) {
	p.Lock()
	p.messages = append(p.messages, msg)
	p.Unlock()

	if p.callback != nil {
		p.callback(msg)
	}
}

// FakeNewLogger creates a fake logger provider.
func FakeNewLogger(callback func(string)) *fakeLogger {
	return &fakeLogger{
		callback: callback,
	}
}
