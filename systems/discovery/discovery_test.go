package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-home-io/ttlock/mocks"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getProvider(vendor providers.IVendorProvider, settings *providers.LockSettings) providers.IDiscoveryProvider {
	return getProviderWithTokens(vendor, settings, mocks.FakeNewTokens("token", nil))
}

func getProviderWithTokens(vendor providers.IVendorProvider, settings *providers.LockSettings,
	tokens providers.ITokenProvider) providers.IDiscoveryProvider {
	return NewDiscoveryProvider(&ConstructDiscovery{
		Logger:   mocks.FakeNewLogger(nil),
		Vendor:   vendor,
		Tokens:   tokens,
		Settings: settings,
	})
}

func entry(id int64, alias string) *providers.LockListEntry {
	return &providers.LockListEntry{LockID: id, LockAlias: alias, ElectricQuantity: json.Number("90")}
}

// Tests that every page is requested.
func TestPagination(t *testing.T) {
	vendor := mocks.FakeNewVendor()
	vendor.ListFunc = func(pageNo int, pageSize int) (*providers.LockListResponse, error) {
		assert.Equal(t, 2, pageSize)
		switch pageNo {
		case 1:
			return &providers.LockListResponse{List: []*providers.LockListEntry{entry(1, "a"), entry(2, "b")},
				PageNo: 1, Pages: 2}, nil
		case 2:
			return &providers.LockListResponse{List: []*providers.LockListEntry{entry(3, "c")},
				PageNo: 2, Pages: 2}, nil
		}

		t.Fatalf("unexpected page %d", pageNo)
		return nil, nil
	}

	p := getProvider(vendor, &providers.LockSettings{PageSize: 2, DiscoveryInterval: 600})
	locks, err := p.Discover(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 3, len(locks))
	assert.Equal(t, int64(3), locks[2].LockID)
	assert.Equal(t, 2, vendor.ListCalls())
}

// Tests that cached list is reused unless forced.
func TestCache(t *testing.T) {
	vendor := mocks.FakeNewVendor()
	vendor.ListFunc = func(pageNo int, pageSize int) (*providers.LockListResponse, error) {
		return &providers.LockListResponse{List: []*providers.LockListEntry{entry(1, "a")}, Pages: 1}, nil
	}

	p := getProvider(vendor, &providers.LockSettings{PageSize: 100, DiscoveryInterval: 600})
	for i := 0; i < 3; i++ {
		_, err := p.Discover(context.Background(), false)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, vendor.ListCalls())

	_, err := p.Discover(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, vendor.ListCalls())

	l, ok := p.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", l.Name)

	_, ok = p.Get(2)
	assert.False(t, ok)
}

// Tests alias filters.
func TestFilters(t *testing.T) {
	in := []struct {
		include  []string
		exclude  []string
		expected []int64
	}{
		{expected: []int64{1, 2, 3}},
		{include: []string{"front*"}, expected: []int64{1}},
		{include: []string{"*door"}, exclude: []string{"back*"}, expected: []int64{1}},
		{exclude: []string{"garage"}, expected: []int64{1, 2}},
		{include: []string{"nothing"}, expected: []int64{}},
	}

	for _, v := range in {
		vendor := mocks.FakeNewVendor()
		vendor.ListFunc = func(pageNo int, pageSize int) (*providers.LockListResponse, error) {
			return &providers.LockListResponse{List: []*providers.LockListEntry{
				entry(1, "front door"), entry(2, "back door"), entry(3, "garage")}, Pages: 1}, nil
		}

		p := getProvider(vendor, &providers.LockSettings{Include: v.include, Exclude: v.exclude})
		locks, err := p.Discover(context.Background(), false)
		require.NoError(t, err)

		ids := make([]int64, 0)
		for _, l := range locks {
			ids = append(ids, l.LockID)
		}
		assert.Equal(t, v.expected, ids, "%v %v", v.include, v.exclude)
	}
}

// Tests vendor entry conversion.
func TestIdentity(t *testing.T) {
	in := &providers.LockListEntry{
		LockID:           5,
		LockName:         "S31_abc",
		LockMac:          "AA:BB",
		ElectricQuantity: json.Number("77"),
		HasGateway:       1,
		LockVersion:      &providers.LockVersion{GroupID: json.Number("12")},
	}

	l := toIdentity(in)
	assert.Equal(t, "S31_abc", l.Name)
	assert.Equal(t, "AA:BB", l.LockMac)
	assert.Equal(t, "12", l.GroupID)
	assert.Equal(t, 77, l.ElectricQuantity)
	assert.True(t, l.HasGateway)

	l = toIdentity(&providers.LockListEntry{LockID: 6, LockAlias: " Front "})
	assert.Equal(t, "Front", l.Name)
	assert.Equal(t, "", l.GroupID)

	l = toIdentity(&providers.LockListEntry{LockID: 7})
	assert.Equal(t, "7", l.Name)
}

// Tests list errors.
func TestErrors(t *testing.T) {
	in := []error{
		&utils.ErrVendorRejected{Operation: "list", Code: 10003},
		&utils.ErrTransport{Operation: "list", Err: errors.New("timeout")},
	}

	for _, v := range in {
		listErr := v
		vendor := mocks.FakeNewVendor()
		vendor.ListFunc = func(pageNo int, pageSize int) (*providers.LockListResponse, error) {
			return nil, listErr
		}

		p := getProvider(vendor, &providers.LockSettings{})
		locks, err := p.Discover(context.Background(), false)
		assert.Error(t, err)
		assert.Nil(t, locks)
	}

	p := NewDiscoveryProvider(&ConstructDiscovery{
		Logger:   mocks.FakeNewLogger(nil),
		Vendor:   mocks.FakeNewVendor(),
		Tokens:   mocks.FakeNewTokens("", &utils.ErrAuth{Attempts: 1}),
		Settings: &providers.LockSettings{},
	})

	_, err := p.Discover(context.Background(), false)
	assert.IsType(t, &utils.ErrAuth{}, err)
}

// Tests that discovery relies on the token store retry bound.
func TestTokenRetries(t *testing.T) {
	vendor := mocks.FakeNewVendor()
	vendor.ListFunc = func(pageNo int, pageSize int) (*providers.LockListResponse, error) {
		return &providers.LockListResponse{List: []*providers.LockListEntry{entry(1, "a")}, Pages: 1}, nil
	}

	tokens := mocks.FakeNewTokens("token", nil)
	p := getProviderWithTokens(vendor, &providers.LockSettings{PageSize: 100}, tokens)
	_, err := p.Discover(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, tokens.Retries())
}
