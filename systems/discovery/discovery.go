// Package discovery contains vendor lock list provider.
package discovery

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/device"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/utils"
	"github.com/gobwas/glob"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

const (
	// Cache key of the whole filtered list.
	listKey = "locks"

	// Upper bound of requested pages.
	maxPages = 100
)

// Implements IDiscoveryProvider.
type provider struct {
	sync.Mutex

	logger   common.ILoggerProvider
	vendor   providers.IVendorProvider
	tokens   providers.ITokenProvider
	pageSize int
	ttl      time.Duration

	include []glob.Glob
	exclude []glob.Glob

	cache *cache.Cache
	known map[int64]*device.LockIdentity
}

// ConstructDiscovery has data required for a new discovery provider.
type ConstructDiscovery struct {
	Logger   common.ILoggerProvider
	Vendor   providers.IVendorProvider
	Tokens   providers.ITokenProvider
	Settings *providers.LockSettings
}

// NewDiscoveryProvider constructs a new discovery provider.
func NewDiscoveryProvider(ctor *ConstructDiscovery) providers.IDiscoveryProvider {
	ttl := cache.NoExpiration
	if ctor.Settings.DiscoveryInterval > 0 {
		ttl = time.Duration(ctor.Settings.DiscoveryInterval) * time.Second
	}

	p := &provider{
		logger:   ctor.Logger,
		vendor:   ctor.Vendor,
		tokens:   ctor.Tokens,
		pageSize: ctor.Settings.PageSize,
		ttl:      ttl,
		cache:    cache.New(ttl, 10*time.Minute),
		known:    make(map[int64]*device.LockIdentity),
	}

	if p.pageSize <= 0 {
		p.pageSize = 100
	}

	p.include = p.compile(ctor.Settings.Include)
	p.exclude = p.compile(ctor.Settings.Exclude)
	return p
}

// Discover returns locks registered in the account and passing alias filters.
// Cached list is returned unless it's expired or force is set.
func (p *provider) Discover(ctx context.Context, force bool) ([]*device.LockIdentity, error) {
	p.Lock()
	defer p.Unlock()

	if !force {
		if data, ok := p.cache.Get(listKey); ok {
			return data.([]*device.LockIdentity), nil
		}
	}

	// Token store applies its own configured retry bound.
	token, err := p.tokens.GetToken(ctx, 0)
	if err != nil {
		p.logger.Error("Failed to get access token, check API keys", err)
		return nil, err
	}

	locks := make([]*device.LockIdentity, 0)
	for pageNo := 1; pageNo <= maxPages; pageNo++ {
		resp, err := p.vendor.ListLocks(ctx, token, pageNo, p.pageSize)
		if err != nil {
			if _, ok := err.(*utils.ErrVendorRejected); ok {
				p.logger.Error("Failed to list locks, check API keys", err)
			} else {
				p.logger.Error("Failed to list locks", err)
			}

			return nil, errors.Wrap(err, "list locks failed")
		}

		for _, v := range resp.List {
			identity := toIdentity(v)
			if !p.allowed(identity.Name) {
				p.logger.Debug("Lock is filtered out", common.LogLockIDToken, strconv.FormatInt(identity.LockID, 10),
					common.LogLockNameToken, identity.Name)
				continue
			}

			locks = append(locks, identity)
		}

		if 0 == len(resp.List) || pageNo >= resp.Pages {
			break
		}
	}

	for _, v := range locks {
		p.known[v.LockID] = v
	}

	p.cache.Set(listKey, locks, p.ttl)
	p.logger.Info("Discovered locks", common.LogValueToken, strconv.Itoa(len(locks)))
	return locks, nil
}

// Get returns previously discovered lock.
func (p *provider) Get(lockID int64) (*device.LockIdentity, bool) {
	p.Lock()
	defer p.Unlock()

	l, ok := p.known[lockID]
	return l, ok
}

// Checks alias against include and exclude filters.
func (p *provider) allowed(name string) bool {
	for _, v := range p.exclude {
		if v.Match(name) {
			return false
		}
	}

	if 0 == len(p.include) {
		return true
	}

	for _, v := range p.include {
		if v.Match(name) {
			return true
		}
	}

	return false
}

// Pre-compiles alias filters.
func (p *provider) compile(patterns []string) []glob.Glob {
	out := make([]glob.Glob, 0)
	for _, v := range patterns {
		g, err := glob.Compile(v)
		if err != nil {
			p.logger.Warn("Failed to compile lock filter", common.LogFieldToken, v)
			continue
		}

		out = append(out, g)
	}

	return out
}

// Converts vendor list entry.
// Alias is preferred as the lock name.
func toIdentity(entry *providers.LockListEntry) *device.LockIdentity {
	identity := &device.LockIdentity{
		LockID:     entry.LockID,
		Alias:      entry.LockAlias,
		LockMac:    entry.LockMac,
		HasGateway: 1 == entry.HasGateway,
	}

	identity.Name = strings.TrimSpace(entry.LockAlias)
	if "" == identity.Name {
		identity.Name = strings.TrimSpace(entry.LockName)
	}
	if "" == identity.Name {
		identity.Name = strconv.FormatInt(entry.LockID, 10)
	}

	if nil != entry.LockVersion {
		identity.GroupID = entry.LockVersion.GroupID.String()
	}

	if q, err := entry.ElectricQuantity.Int64(); err == nil {
		identity.ElectricQuantity = int(q)
	}

	return identity
}
