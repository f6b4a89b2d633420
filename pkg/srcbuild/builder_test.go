package srcbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarballURL(t *testing.T) {
	b := NewBuilder(&Config{CachePath: t.TempDir()})

	tests := []struct {
		version string
		want    string
	}{
		{"2.6.3", "https://cache.ruby-lang.org/pub/ruby/2.6/ruby-2.6.3.tar.xz"},
		{"3.0.0", "https://cache.ruby-lang.org/pub/ruby/3.0/ruby-3.0.0.tar.xz"},
		{"2.0.0-p374", "https://cache.ruby-lang.org/pub/ruby/2.0/ruby-2.0.0-p374.tar.xz"},
	}

	for _, tt := range tests {
		url, err := b.TarballURL(tt.version)
		require.NoError(t, err)
		assert.Equal(t, tt.want, url)
	}

	_, err := b.TarballURL("garbage")
	assert.Error(t, err)
}

func TestTarballURLCustomMirror(t *testing.T) {
	b := NewBuilder(&Config{
		CachePath: t.TempDir(),
		MirrorURL: "https://mirror.example.com/ruby",
	})

	url, err := b.TarballURL("2.6.3")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com/ruby/2.6/ruby-2.6.3.tar.xz", url)
}

func TestInstalled(t *testing.T) {
	cache := t.TempDir()
	b := NewBuilder(&Config{CachePath: cache})

	_, ok := b.Installed("2.6.3")
	assert.False(t, ok)

	// A finished build is recognized by its bin/ruby
	bin := filepath.Join(b.InstallDir("2.6.3"), "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "ruby"), []byte("#!"), 0755))

	inst, ok := b.Installed("2.6.3")
	require.True(t, ok)
	assert.Equal(t, "srcbuild", inst.Client)
	assert.Equal(t, "2.6.3", inst.Version)
	assert.Equal(t, b.InstallDir("2.6.3"), inst.Prefix)
}

func TestSafeJoin(t *testing.T) {
	dest := t.TempDir()

	p, err := safeJoin(dest, "ruby-2.6.3/main.c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "ruby-2.6.3", "main.c"), p)

	_, err = safeJoin(dest, "../escape")
	assert.Error(t, err)

	_, err = safeJoin(dest, "a/../../escape")
	assert.Error(t, err)
}
