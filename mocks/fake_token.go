//go:build !release

package mocks

import (
	"context"
	"sync"
)

// FakeTokens is a token store returning fixed token or error.
type FakeTokens struct {
	sync.Mutex

	Token string
	Err   error

	calls       int
	retries     []int
	invalidated int
}

// GetToken returns configured token.
func (f *FakeTokens) GetToken(_ context.Context, maxRetries int) (string, error) {
	f.Lock()
	defer f.Unlock()

	f.calls++
	f.retries = append(f.retries, maxRetries)
	if nil != f.Err {
		return "", f.Err
	}

	return f.Token, nil
}

// Invalidate records invalidation.
func (f *FakeTokens) Invalidate() {
	f.Lock()
	defer f.Unlock()
	f.invalidated++
}

// Calls returns number of token requests.
func (f *FakeTokens) Calls() int {
	f.Lock()
	defer f.Unlock()
	return f.calls
}

// Retries returns every requested retry bound.
func (f *FakeTokens) Retries() []int {
	f.Lock()
	defer f.Unlock()
	return append([]int{}, f.retries...)
}

// Invalidated returns number of invalidations.
func (f *FakeTokens) Invalidated() int {
	f.Lock()
	defer f.Unlock()
	return f.invalidated
}

// FakeNewTokens creates a new fake token store.
func FakeNewTokens(token string, err error) *FakeTokens {
	return &FakeTokens{
		Token: token,
		Err:   err,
	}
}
