package utils

import (
	"testing"

	"github.com/go-home-io/ttlock/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

type testStruct struct {
	Percent  uint8  `validate:"percent"`
	Port     int32  `validate:"port"`
	Name     string `validate:"required" default:"front"`
	Interval int    `yaml:"interval" validate:"gte=0" default:"60"`
}

// Tests success validation
func TestSuccessValidation(t *testing.T) {
	in := []*testStruct{
		{
			Percent: 0,
			Port:    8080,
		},
		{
			Percent: 100,
			Port:    65535,
			Name:    "back",
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for _, v := range in {
		assert.True(t, validator.Defaults(v), v.Name)
		assert.True(t, validator.Validate(v), v.Name)
	}

	assert.Equal(t, "front", in[0].Name)
	assert.Equal(t, 60, in[0].Interval)
	assert.Equal(t, "back", in[1].Name)
}

// Tests that values assigned after defaults are not replaced.
func TestZeroAfterDefaults(t *testing.T) {
	validator := NewValidator(mocks.FakeNewLogger(nil))
	d := &testStruct{Port: 8080}
	require.True(t, validator.Defaults(d))
	require.NoError(t, yaml.Unmarshal([]byte("interval: 0"), d))

	assert.True(t, validator.Validate(d))
	assert.Equal(t, 0, d.Interval)
	assert.Equal(t, "front", d.Name)
}

// Tests validation without pointer.
func TestNotPointer(t *testing.T) {
	validator := NewValidator(mocks.FakeNewLogger(nil))
	d := testStruct{
		Percent: 0,
		Port:    8080,
	}

	assert.False(t, validator.Validate(d))
}

// Tests incorrect data
func TestFailedValidation(t *testing.T) {
	in := []*testStruct{
		{
			Percent: 120,
			Port:    8080,
		},
		{
			Port: 100000,
		},
		{
			Port: 0,
		},
	}

	warned := false
	validator := NewValidator(mocks.FakeNewLogger(func(s string) {
		if s == "Validation error" {
			warned = true
		}
	}))
	for k, v := range in {
		assert.False(t, validator.Validate(v), "%d", k)
	}

	assert.True(t, warned)
}
