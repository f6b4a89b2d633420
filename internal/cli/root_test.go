package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosy-lang/rubylink/pkg/client"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	config = client.DefaultConfig()
	clientName = ""
	t.Setenv(client.EnvRuby, "")
	t.Setenv(client.EnvRubyVersion, "")
	t.Cleanup(func() {
		config = nil
		clientName = ""
	})
}

func TestSpecFromArgs(t *testing.T) {
	resetGlobals(t)

	spec, err := specFromArgs([]string{"rvm:2.6.3"})
	require.NoError(t, err)
	assert.Equal(t, client.TypeRvm, spec.Client)
	assert.Equal(t, "2.6.3", spec.Version)
}

func TestSpecFromArgsVersionBeatsEnv(t *testing.T) {
	resetGlobals(t)
	t.Setenv(client.EnvRubyVersion, "3.0.0")

	spec, err := specFromArgs([]string{"rvm:2.6.3"})
	require.NoError(t, err)
	assert.Equal(t, "2.6.3", spec.Version)
}

func TestSpecFromArgsBareClientKeepsEnvVersion(t *testing.T) {
	resetGlobals(t)
	t.Setenv(client.EnvRubyVersion, "3.0.0")

	spec, err := specFromArgs([]string{"rvm"})
	require.NoError(t, err)
	assert.Equal(t, client.TypeRvm, spec.Client)
	assert.Equal(t, "3.0.0", spec.Version)
}

func TestSpecFromArgsClientFlagWins(t *testing.T) {
	resetGlobals(t)
	clientName = "rbenv"

	spec, err := specFromArgs([]string{"rvm:2.6.3"})
	require.NoError(t, err)
	assert.Equal(t, client.TypeRbenv, spec.Client)
	assert.Equal(t, "2.6.3", spec.Version)
}

func TestSpecFromArgsUnknownClientFlag(t *testing.T) {
	resetGlobals(t)
	clientName = "asdf"

	_, err := specFromArgs(nil)
	require.Error(t, err)
	assert.True(t, client.IsConfig(err))
}

func TestSpecFromArgsEmptyUsesEnv(t *testing.T) {
	resetGlobals(t)
	t.Setenv(client.EnvRuby, "chruby:2.6")

	spec, err := specFromArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, client.TypeChruby, spec.Client)
	assert.Equal(t, "2.6", spec.Version)
}
