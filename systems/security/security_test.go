package security

import (
	"testing"

	"github.com/go-home-io/ttlock/mocks"
	"github.com/go-home-io/ttlock/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests provider without users.
func TestDisabled(t *testing.T) {
	prov := NewSecurityProvider(&ConstructSecurityProvider{Logger: mocks.FakeNewLogger(nil)})
	assert.False(t, prov.IsEnabled())
}

// Tests that successful authentication is cached.
func TestGetUserCached(t *testing.T) {
	settings := &providers.SecuritySettings{Users: []*providers.SecUser{{Name: "user", Password: getHash("pwd")}}}
	prov := NewSecurityProvider(&ConstructSecurityProvider{
		Logger:   mocks.FakeNewLogger(nil),
		Settings: settings,
	})
	require.True(t, prov.IsEnabled())

	usr, err := prov.GetUser(getAuthHeader("user", "pwd"))
	require.NoError(t, err)
	assert.Equal(t, "user", usr)

	p := prov.(*provider)
	_, ok := p.cache.Get(getAuthHeader("user", "pwd")["Authorization"][0])
	assert.True(t, ok)

	p.users.presetPasswords = map[string]string{}
	usr, err = prov.GetUser(getAuthHeader("user", "pwd"))
	require.NoError(t, err)
	assert.Equal(t, "user", usr)

	_, err = prov.GetUser(getAuthHeader("user", "wrong"))
	assert.Error(t, err)
}
