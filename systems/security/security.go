// Package security contains hub API security provider.
package security

import (
	"time"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/patrickmn/go-cache"
)

// Implements security provider.
type provider struct {
	logger common.ILoggerProvider
	users  *basicAuthProvider
	cache  *cache.Cache
}

// ConstructSecurityProvider has all data required for a new security provider.
type ConstructSecurityProvider struct {
	Logger   common.ILoggerProvider
	Settings *providers.SecuritySettings
	// UsersFile is an optional htpasswd file.
	UsersFile string
}

// NewSecurityProvider constructs new security provider.
func NewSecurityProvider(ctor *ConstructSecurityProvider) providers.ISecurityProvider {
	users := make([]*providers.SecUser, 0)
	if nil != ctor.Settings {
		users = ctor.Settings.Users
	}

	prov := &provider{
		logger: ctor.Logger,
		users:  newBasicAuthProvider(ctor.Logger, users, ctor.UsersFile),
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}

	if !prov.IsEnabled() {
		prov.logger.Warn("No users configured, hub API is not protected")
	}

	return prov
}

// IsEnabled checks whether hub API requires authentication.
func (p *provider) IsEnabled() bool {
	return p.users.hasUsers()
}

// GetUser returns authenticated user name.
// Successful headers are cached, so bcrypt comparison is not repeated for every request.
func (p *provider) GetUser(headers map[string][]string) (string, error) {
	header, _ := authHeader(headers)
	if "" != header {
		if usr, ok := p.cache.Get(header); ok {
			return usr.(string), nil
		}
	}

	usr, err := p.users.Authorize(headers)
	if err != nil {
		return "", err
	}

	p.cache.Set(header, usr, cache.DefaultExpiration)
	return usr, nil
}
