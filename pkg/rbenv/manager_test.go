package rbenv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosy-lang/rubylink/pkg/client"
)

func fakeRoot(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "versions", d), 0755))
	}
	return root
}

func TestList(t *testing.T) {
	root := fakeRoot(t,
		"2.6.3", "3.0.0", "3.0.0-preview1",
		"jruby-9.2.0.0", "mruby-2.1.2")
	m := NewManager(&Config{Root: root})

	installs, err := m.List(context.Background())
	require.NoError(t, err)

	var versions []string
	for _, inst := range installs {
		versions = append(versions, inst.Version)
		assert.Equal(t, "rbenv", inst.Client)
	}
	// Prereleases sort below the release they precede
	assert.Equal(t, []string{"3.0.0", "3.0.0-preview1", "2.6.3"}, versions)
}

func TestResolve(t *testing.T) {
	root := fakeRoot(t, "2.5.1", "2.6.3", "2.6.10")
	m := NewManager(&Config{Root: root})

	inst, err := m.Resolve(context.Background(), "2.6")
	require.NoError(t, err)
	assert.Equal(t, "2.6.10", inst.Version)
	assert.Equal(t, filepath.Join(root, "versions", "2.6.10"), inst.Prefix)

	_, err = m.Resolve(context.Background(), "3.1.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrRubyNotFound))
}

func TestNotAvailable(t *testing.T) {
	m := NewManager(&Config{Root: filepath.Join(t.TempDir(), "nope")})
	assert.False(t, m.IsAvailable())

	_, err := m.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrClientNotAvailable))
}

func TestRootEnv(t *testing.T) {
	root := fakeRoot(t, "2.6.3")
	t.Setenv(RootEnvVar, root)

	m := NewManager(nil)
	assert.Equal(t, root, m.Root())
	assert.True(t, m.IsAvailable())
}
