// Package token contains vendor access token store.
package token

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/utils"
	"golang.org/x/sync/singleflight"
)

const (
	// Token is treated as expired this long before its actual expiry.
	expiryMargin = 120 * time.Second

	// Single flight key: store holds exactly one credential.
	flightKey = "credential"
)

// Cached access token.
type credential struct {
	token     string
	expiresAt time.Time
}

// Checks whether token can still be used at the given moment.
func (c *credential) validAt(now time.Time) bool {
	return nil != c && c.expiresAt.Sub(now) > expiryMargin
}

// Implements ITokenProvider.
type store struct {
	sync.RWMutex

	logger      common.ILoggerProvider
	vendor      providers.IVendorProvider
	credentials *providers.VendorCredentials
	maxRetries  int
	interval    time.Duration
	now         func() time.Time

	cred   *credential
	flight singleflight.Group
}

// ConstructTokenStore has data required for a new token store.
type ConstructTokenStore struct {
	Logger      common.ILoggerProvider
	Vendor      providers.IVendorProvider
	Credentials *providers.VendorCredentials
	// MaxRetries is used when caller doesn't specify its own bound.
	MaxRetries int
	// RetryInterval is a pause between failed attempts.
	RetryInterval time.Duration
	Clock         func() time.Time
}

// NewTokenStore constructs a new access token store.
func NewTokenStore(ctor *ConstructTokenStore) providers.ITokenProvider {
	s := &store{
		logger:      ctor.Logger,
		vendor:      ctor.Vendor,
		credentials: ctor.Credentials,
		maxRetries:  ctor.MaxRetries,
		interval:    ctor.RetryInterval,
		now:         ctor.Clock,
	}

	if s.maxRetries <= 0 {
		s.maxRetries = 1
	}

	if nil == s.now {
		s.now = time.Now
	}

	return s
}

// GetToken returns cached token if it's not about to expire.
// Otherwise requests a new one, concurrent callers share the same request.
// Non-positive maxRetries means configured default.
func (s *store) GetToken(ctx context.Context, maxRetries int) (string, error) {
	if token, ok := s.cached(); ok {
		return token, nil
	}

	if maxRetries <= 0 {
		maxRetries = s.maxRetries
	}

	ch := s.flight.DoChan(flightKey, func() (interface{}, error) {
		if token, ok := s.cached(); ok {
			return token, nil
		}

		return s.refresh(ctx, maxRetries)
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}

		return r.Val.(string), nil
	case <-ctx.Done():
		return "", &utils.ErrAuth{Attempts: 0, Err: ctx.Err()}
	}
}

// Invalidate drops cached token.
func (s *store) Invalidate() {
	s.Lock()
	defer s.Unlock()

	s.cred = nil
}

// Returns cached token, dropping it if it's about to expire.
func (s *store) cached() (string, bool) {
	s.RLock()
	c := s.cred
	s.RUnlock()

	if c.validAt(s.now()) {
		return c.token, true
	}

	if nil != c {
		s.Lock()
		if s.cred == c {
			s.cred = nil
		}
		s.Unlock()
	}

	return "", false
}

// Requests a new token, attempting at most maxRetries times.
func (s *store) refresh(ctx context.Context, maxRetries int) (string, error) {
	var lastErr error
	attempt := 1
	for ; attempt <= maxRetries; attempt++ {
		resp, err := s.vendor.Authenticate(ctx, s.credentials)
		if err == nil {
			c := &credential{
				token:     resp.AccessToken,
				expiresAt: s.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
			}

			s.Lock()
			s.cred = c
			s.Unlock()

			s.logger.Debug("Received new access token", common.LogAttemptToken, strconv.Itoa(attempt))
			return c.token, nil
		}

		lastErr = err
		s.logger.Warn("Failed to get access token", common.LogAttemptToken, strconv.Itoa(attempt),
			common.LogErrorToken, err.Error())

		if attempt == maxRetries {
			break
		}

		if err := s.pause(ctx); err != nil {
			lastErr = err
			break
		}
	}

	if attempt > maxRetries {
		attempt = maxRetries
	}

	s.Invalidate()
	return "", &utils.ErrAuth{Attempts: attempt, Err: lastErr}
}

// Waits between attempts unless context is done.
func (s *store) pause(ctx context.Context) error {
	if s.interval <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(s.interval)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
