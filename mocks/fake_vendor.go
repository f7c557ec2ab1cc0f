//go:build !release

package mocks

import (
	"context"
	"sync"

	"github.com/go-home-io/ttlock/device/enums"
	"github.com/go-home-io/ttlock/providers"
)

// FakeVendor is a scriptable vendor API.
// Nil handlers return successful empty responses.
type FakeVendor struct {
	sync.Mutex

	AuthFunc   func(call int) (*providers.TokenResponse, error)
	ActionFunc func(action enums.LockAction, lockID int64, token string) (*providers.ActionResponse, error)
	StateFunc  func(lockID int64, token string) (*providers.OpenStateResponse, error)
	DetailFunc func(lockID int64, token string) (*providers.LockDetailResponse, error)
	ListFunc   func(pageNo int, pageSize int) (*providers.LockListResponse, error)

	authCalls   int
	actions     []enums.LockAction
	stateCalls  int
	detailCalls int
	listCalls   int
}

// Authenticate returns scripted token response.
func (f *FakeVendor) Authenticate(_ context.Context, _ *providers.VendorCredentials) (*providers.TokenResponse, error) {
	f.Lock()
	f.authCalls++
	call := f.authCalls
	f.Unlock()

	if nil == f.AuthFunc {
		return &providers.TokenResponse{AccessToken: "token", ExpiresIn: 3600}, nil
	}

	return f.AuthFunc(call)
}

// ExecuteAction returns scripted action response.
func (f *FakeVendor) ExecuteAction(_ context.Context, action enums.LockAction, lockID int64,
	token string) (*providers.ActionResponse, error) {
	f.Lock()
	f.actions = append(f.actions, action)
	f.Unlock()

	if nil == f.ActionFunc {
		return &providers.ActionResponse{}, nil
	}

	return f.ActionFunc(action, lockID, token)
}

// QueryOpenState returns scripted state response.
func (f *FakeVendor) QueryOpenState(_ context.Context, lockID int64,
	token string) (*providers.OpenStateResponse, error) {
	f.Lock()
	f.stateCalls++
	f.Unlock()

	if nil == f.StateFunc {
		return &providers.OpenStateResponse{State: int(enums.OpenStateSecured)}, nil
	}

	return f.StateFunc(lockID, token)
}

// GetLockDetail returns scripted detail response.
func (f *FakeVendor) GetLockDetail(_ context.Context, lockID int64,
	token string) (*providers.LockDetailResponse, error) {
	f.Lock()
	f.detailCalls++
	f.Unlock()

	if nil == f.DetailFunc {
		return &providers.LockDetailResponse{LockID: lockID, ElectricQuantity: "100"}, nil
	}

	return f.DetailFunc(lockID, token)
}

// ListLocks returns scripted list response.
func (f *FakeVendor) ListLocks(_ context.Context, _ string, pageNo int,
	pageSize int) (*providers.LockListResponse, error) {
	f.Lock()
	f.listCalls++
	f.Unlock()

	if nil == f.ListFunc {
		return &providers.LockListResponse{PageNo: pageNo, PageSize: pageSize, Pages: 1}, nil
	}

	return f.ListFunc(pageNo, pageSize)
}

// AuthCalls returns number of token requests.
func (f *FakeVendor) AuthCalls() int {
	f.Lock()
	defer f.Unlock()
	return f.authCalls
}

// Actions returns every invoked action in order.
func (f *FakeVendor) Actions() []enums.LockAction {
	f.Lock()
	defer f.Unlock()
	return append([]enums.LockAction{}, f.actions...)
}

// StateCalls returns number of open state queries.
func (f *FakeVendor) StateCalls() int {
	f.Lock()
	defer f.Unlock()
	return f.stateCalls
}

// DetailCalls returns number of detail queries.
func (f *FakeVendor) DetailCalls() int {
	f.Lock()
	defer f.Unlock()
	return f.detailCalls
}

// ListCalls returns number of list queries.
func (f *FakeVendor) ListCalls() int {
	f.Lock()
	defer f.Unlock()
	return f.listCalls
}

// FakeNewVendor creates a new fake vendor API.
func FakeNewVendor() *FakeVendor {
	return &FakeVendor{}
}
