package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		client  Type
		version string
	}{
		{"client and version", "rvm:2.6.3", TypeRvm, "2.6.3"},
		{"client only", "rvm", TypeRvm, ""},
		{"system with version", "system:2.6", TypeSystem, "2.6"},
		{"rbenv", "rbenv:3.0.0", TypeRbenv, "3.0.0"},
		{"chruby", "chruby", TypeChruby, ""},
		{"auto", "auto:2.6", TypeAuto, "2.6"},
		{"uppercase client", "RVM:2.6.3", TypeRvm, "2.6.3"},
		{"surrounding whitespace", "  rvm:2.6.3  ", TypeRvm, "2.6.3"},
		{"empty selects default", "", DefaultType, ""},
		{"patchlevel suffix", "rvm:2.0.0-p374", TypeRvm, "2.0.0-p374"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseSpec(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.client, spec.Client)
			assert.Equal(t, tt.version, spec.Version)
		})
	}
}

func TestParseSpecUnknownClient(t *testing.T) {
	_, err := ParseSpec("asdf:2.6.3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownClient))
	assert.True(t, IsConfig(err))
	assert.False(t, IsNotFound(err))
}

func TestParseSpecEmptyClientName(t *testing.T) {
	_, err := ParseSpec(":2.6.3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSpec))
	assert.True(t, IsConfig(err))
}

func TestSpecString(t *testing.T) {
	s := &Spec{Client: TypeRvm, Version: "2.6.3"}
	assert.Equal(t, "rvm:2.6.3", s.String())

	s = &Spec{Client: TypeSystem}
	assert.Equal(t, "system", s.String())
}

func TestSpecRoundTrip(t *testing.T) {
	for _, in := range []string{"rvm:2.6.3", "rbenv", "chruby:3.0"} {
		spec, err := ParseSpec(in)
		require.NoError(t, err)
		assert.Equal(t, in, spec.String())
	}
}

func TestDefaultType(t *testing.T) {
	assert.Equal(t, TypeSystem, DefaultType)
}

func TestKnown(t *testing.T) {
	for _, typ := range []Type{TypeSystem, TypeRvm, TypeRbenv, TypeChruby, TypeAuto} {
		assert.True(t, Known(typ), "expected %q to be known", typ)
	}
	assert.False(t, Known(Type("asdf")))
	assert.False(t, Known(Type("")))
}
