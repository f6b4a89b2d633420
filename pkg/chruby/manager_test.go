package chruby

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
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
	return root
}

func TestList(t *testing.T) {
	// chruby accepts both ruby-X.Y.Z and bare X.Y.Z directories
	root := fakeRoot(t, "ruby-2.6.3", "3.0.0", "jruby-9.2.0.0", ".hidden")
	m := NewManager(&Config{Roots: []string{root}})

	installs, err := m.List(context.Background())
	require.NoError(t, err)

	var versions []string
	for _, inst := range installs {
		versions = append(versions, inst.Version)
		assert.Equal(t, "chruby", inst.Client)
	}
	assert.Equal(t, []string{"3.0.0", "2.6.3"}, versions)
}

func TestListEarlierRootWins(t *testing.T) {
	first := fakeRoot(t, "ruby-2.6.3")
	second := fakeRoot(t, "ruby-2.6.3", "ruby-3.0.0")
	m := NewManager(&Config{Roots: []string{first, second}})

	installs, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, installs, 2)

	byVersion := map[string]string{}
	for _, inst := range installs {
		byVersion[inst.Version] = inst.Prefix
	}
	assert.Equal(t, filepath.Join(first, "ruby-2.6.3"), byVersion["2.6.3"])
	assert.Equal(t, filepath.Join(second, "ruby-3.0.0"), byVersion["3.0.0"])
}

func TestListSkipsMissingRoots(t *testing.T) {
	present := fakeRoot(t, "ruby-2.6.3")
	missing := filepath.Join(t.TempDir(), "nope")
	m := NewManager(&Config{Roots: []string{missing, present}})

	installs, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, installs, 1)
	assert.Equal(t, "2.6.3", installs[0].Version)
}

func TestResolve(t *testing.T) {
	root := fakeRoot(t, "ruby-2.5.1", "ruby-2.6.3")
	m := NewManager(&Config{Roots: []string{root}})

	inst, err := m.Resolve(context.Background(), "2.6.3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ruby-2.6.3"), inst.Prefix)

	_, err = m.Resolve(context.Background(), "3.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrRubyNotFound))
}

func TestNotAvailable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	m := NewManager(&Config{Roots: []string{missing}})
	assert.False(t, m.IsAvailable())

	_, err := m.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrClientNotAvailable))
}
