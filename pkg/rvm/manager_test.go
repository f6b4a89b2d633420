package rvm

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
		require.NoError(t, os.MkdirAll(filepath.Join(root, "rubies", d), 0755))
	}
	return root
}

func TestList(t *testing.T) {
	root := fakeRoot(t,
		"ruby-2.5.1", "ruby-2.6.3", "ruby-2.6.10",
		"jruby-9.2.0.0", "default")
	m := NewManager(&Config{Root: root})

	installs, err := m.List(context.Background())
	require.NoError(t, err)

	var versions []string
	for _, inst := range installs {
		versions = append(versions, inst.Version)
		assert.Equal(t, "rvm", inst.Client)
		assert.Equal(t, filepath.Join(inst.Prefix, "bin", "ruby"), inst.Exe)
	}
	assert.Equal(t, []string{"2.6.10", "2.6.3", "2.5.1"}, versions)
}

func TestResolveExact(t *testing.T) {
	root := fakeRoot(t, "ruby-2.6.3", "ruby-2.6.10")
	m := NewManager(&Config{Root: root})

	inst, err := m.Resolve(context.Background(), "2.6.3")
	require.NoError(t, err)
	assert.Equal(t, "2.6.3", inst.Version)
	assert.Equal(t, filepath.Join(root, "rubies", "ruby-2.6.3"), inst.Prefix)
}

func TestResolvePrefixPicksNewest(t *testing.T) {
	root := fakeRoot(t, "ruby-2.5.1", "ruby-2.6.3", "ruby-2.6.10")
	m := NewManager(&Config{Root: root})

	inst, err := m.Resolve(context.Background(), "2.6")
	require.NoError(t, err)
	assert.Equal(t, "2.6.10", inst.Version)
}

func TestResolveEmptyConstraint(t *testing.T) {
	root := fakeRoot(t, "ruby-2.5.1", "ruby-3.0.0")
	m := NewManager(&Config{Root: root})

	inst, err := m.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", inst.Version)
}

func TestResolveNotFound(t *testing.T) {
	root := fakeRoot(t, "ruby-2.6.3")
	m := NewManager(&Config{Root: root})

	_, err := m.Resolve(context.Background(), "3.0.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrRubyNotFound))
	assert.True(t, client.IsNotFound(err))
}

func TestResolveInvalidConstraint(t *testing.T) {
	root := fakeRoot(t, "ruby-2.6.3")
	m := NewManager(&Config{Root: root})

	_, err := m.Resolve(context.Background(), "2.6.3.1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrInvalidSpec))
}

func TestNotAvailable(t *testing.T) {
	m := NewManager(&Config{Root: filepath.Join(t.TempDir(), "nope")})
	assert.False(t, m.IsAvailable())

	_, err := m.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrClientNotAvailable))
}

func TestDetectRootEnv(t *testing.T) {
	root := fakeRoot(t, "ruby-2.6.3")
	t.Setenv(RootEnvVar, root)

	m := NewManager(nil)
	assert.Equal(t, root, m.Root())
	assert.True(t, m.IsAvailable())
}
