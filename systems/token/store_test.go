package token

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/go-home-io/ttlock/mocks"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Manually moved clock.
type fakeClock struct {
	sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.Lock()
	defer c.Unlock()
	c.now = c.now.Add(d)
}

func getStore(vendor providers.IVendorProvider, maxRetries int) (providers.ITokenProvider, *fakeClock) {
	clock := &fakeClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewTokenStore(&ConstructTokenStore{
		Logger:      mocks.FakeNewLogger(nil),
		Vendor:      vendor,
		Credentials: &providers.VendorCredentials{ClientID: "id"},
		MaxRetries:  maxRetries,
		Clock:       clock.Now,
	})

	return s, clock
}

func tokenResponse(token string, expiresIn int64) *providers.TokenResponse {
	return &providers.TokenResponse{AccessToken: token, ExpiresIn: expiresIn}
}

// Tests that token is reused while it's outside of expiry margin.
func TestCachedToken(t *testing.T) {
	v := mocks.FakeNewVendor()
	v.AuthFunc = func(call int) (*providers.TokenResponse, error) {
		return tokenResponse("t1", 3600), nil
	}

	s, clock := getStore(v, 3)
	token, err := s.GetToken(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	clock.Add(3600*time.Second - 121*time.Second)
	token, err = s.GetToken(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	assert.Equal(t, 1, v.AuthCalls())
}

// Tests that token close to expiry is refreshed.
func TestTokenRefresh(t *testing.T) {
	in := []time.Duration{60 * time.Second, 120 * time.Second, 0, -time.Hour}

	for _, v := range in {
		vendor := mocks.FakeNewVendor()
		vendor.AuthFunc = func(call int) (*providers.TokenResponse, error) {
			if 1 == call {
				return tokenResponse("old", 3600), nil
			}

			return tokenResponse("new", 3600), nil
		}

		s, clock := getStore(vendor, 3)
		_, err := s.GetToken(context.Background(), 0)
		require.NoError(t, err)

		clock.Add(3600*time.Second - v)
		token, err := s.GetToken(context.Background(), 0)
		require.NoError(t, err, v.String())
		assert.Equal(t, "new", token, v.String())
		assert.Equal(t, 2, vendor.AuthCalls(), v.String())
	}
}

// Tests that failures are retried exactly the requested number of times.
func TestRetryBound(t *testing.T) {
	in := []struct {
		defaultRetries int
		requested      int
		expected       int
	}{
		{defaultRetries: 3, requested: 3, expected: 3},
		{defaultRetries: 3, requested: 1, expected: 1},
		{defaultRetries: 2, requested: 0, expected: 2},
		{defaultRetries: 5, requested: -1, expected: 5},
		{defaultRetries: 0, requested: 0, expected: 1},
	}

	for _, v := range in {
		vendor := mocks.FakeNewVendor()
		vendor.AuthFunc = func(call int) (*providers.TokenResponse, error) {
			return nil, errors.New("unauthorized")
		}

		s, _ := getStore(vendor, v.defaultRetries)
		_, err := s.GetToken(context.Background(), v.requested)
		require.Error(t, err)

		authErr, ok := err.(*utils.ErrAuth)
		require.True(t, ok)
		assert.Equal(t, v.expected, authErr.Attempts)
		assert.Equal(t, "unauthorized", authErr.Cause().Error())
		assert.Equal(t, v.expected, vendor.AuthCalls())
	}
}

// Tests recovery after a failed attempt.
func TestRetrySuccess(t *testing.T) {
	vendor := mocks.FakeNewVendor()
	vendor.AuthFunc = func(call int) (*providers.TokenResponse, error) {
		if call < 3 {
			return nil, &utils.ErrTransport{Operation: "authenticate", Err: errors.New("timeout")}
		}

		return tokenResponse("t3", 3600), nil
	}

	s, _ := getStore(vendor, 3)
	token, err := s.GetToken(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "t3", token)
	assert.Equal(t, 3, vendor.AuthCalls())
}

// Tests that failed refresh doesn't keep expired token.
func TestFailedRefreshDropsToken(t *testing.T) {
	vendor := mocks.FakeNewVendor()
	vendor.AuthFunc = func(call int) (*providers.TokenResponse, error) {
		switch call {
		case 1:
			return tokenResponse("t1", 200), nil
		case 2:
			return nil, errors.New("down")
		}

		return tokenResponse("t3", 3600), nil
	}

	s, clock := getStore(vendor, 1)
	_, err := s.GetToken(context.Background(), 0)
	require.NoError(t, err)

	clock.Add(100 * time.Second)
	_, err = s.GetToken(context.Background(), 0)
	assert.IsType(t, &utils.ErrAuth{}, err)

	token, err := s.GetToken(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "t3", token)
}

// Tests that invalidated token is requested again.
func TestInvalidate(t *testing.T) {
	vendor := mocks.FakeNewVendor()
	s, _ := getStore(vendor, 1)

	_, err := s.GetToken(context.Background(), 0)
	require.NoError(t, err)
	s.Invalidate()
	_, err = s.GetToken(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, vendor.AuthCalls())
}

// Tests that concurrent callers share a single token request.
func TestCoalescing(t *testing.T) {
	defer leaktest.Check(t)()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	vendor := mocks.FakeNewVendor()
	vendor.AuthFunc = func(call int) (*providers.TokenResponse, error) {
		started <- struct{}{}
		<-release
		return tokenResponse("shared", 3600), nil
	}

	s, _ := getStore(vendor, 3)

	const callers = 10
	wg := sync.WaitGroup{}
	results := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := s.GetToken(context.Background(), 0)
			assert.NoError(t, err)
			results <- token
		}()
	}

	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		assert.Equal(t, "shared", v)
	}

	assert.Equal(t, 1, vendor.AuthCalls())
}

// Tests that failure is propagated to every waiting caller.
func TestCoalescedFailure(t *testing.T) {
	defer leaktest.Check(t)()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	vendor := mocks.FakeNewVendor()
	vendor.AuthFunc = func(call int) (*providers.TokenResponse, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil, errors.New("rejected")
	}

	s, _ := getStore(vendor, 1)

	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetToken(context.Background(), 0)
			assert.IsType(t, &utils.ErrAuth{}, err)
		}()
	}

	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.True(t, vendor.AuthCalls() <= 5)
}

// Tests that retry pause respects context.
func TestRetryPauseCancelled(t *testing.T) {
	defer leaktest.Check(t)()

	ctx, cancel := context.WithCancel(context.Background())
	vendor := mocks.FakeNewVendor()
	vendor.AuthFunc = func(call int) (*providers.TokenResponse, error) {
		cancel()
		return nil, errors.New("unauthorized")
	}

	s := NewTokenStore(&ConstructTokenStore{
		Logger:        mocks.FakeNewLogger(nil),
		Vendor:        vendor,
		Credentials:   &providers.VendorCredentials{},
		MaxRetries:    5,
		RetryInterval: time.Hour,
	})

	_, err := s.GetToken(ctx, 0)
	assert.IsType(t, &utils.ErrAuth{}, err)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, vendor.AuthCalls())
}
