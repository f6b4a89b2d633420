package nixcache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosy-lang/rubylink/pkg/client"
)

func TestAttrForVersion(t *testing.T) {
	tests := []struct {
		version string
		attr    string
	}{
		{"2.6.3", "ruby_2_6"},
		{"2.7.1", "ruby_2_7"},
		{"3.0.0", "ruby_3_0"},
		{"3.2.2", "ruby_3_2"},
	}

	for _, tt := range tests {
		attr, err := AttrForVersion(tt.version)
		require.NoError(t, err)
		assert.Equal(t, tt.attr, attr)
	}

	_, err := AttrForVersion("garbage")
	assert.Error(t, err)
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "amd64", "x86_64-linux"},
		{"linux", "arm64", "aarch64-linux"},
		{"darwin", "amd64", "x86_64-darwin"},
		{"darwin", "arm64", "aarch64-darwin"},
	}

	for _, tt := range tests {
		got, err := DetectPlatform(tt.goos, tt.goarch)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := DetectPlatform("windows", "amd64")
	assert.Error(t, err)

	_, err = DetectPlatform("linux", "mips")
	assert.Error(t, err)
}

func TestVerifyInstalledVersion(t *testing.T) {
	assert.NoError(t, verifyInstalledVersion("2.6.3", "2.6.3"))

	// Hydra's latest ruby_2_6 build may be a newer patch release than the
	// one asked for; that must surface as not-found, never be relabeled
	err := verifyInstalledVersion("2.6.3", "2.6.10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrRubyNotFound))
	assert.True(t, client.IsNotFound(err))
}

func TestToNixBase32(t *testing.T) {
	assert.Equal(t, "00", toNixBase32([]byte{0x00}))
	assert.Equal(t, "7z", toNixBase32([]byte{0xFF}))

	// 32 zero bytes encode to 52 zero characters, the width of a
	// sha256 FileHash in a narinfo
	assert.Len(t, toNixBase32(make([]byte, 32)), 52)
}
