package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		exact bool
	}{
		{"2.6.3", true},
		{"2.0.0-p374", true},
		{"2.6", false},
		{"2", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := Parse(tt.input)
			require.NoError(t, err)

			exact, ok := c.Exact()
			assert.Equal(t, tt.exact, ok)
			if tt.exact {
				assert.Equal(t, tt.input, exact)
			}
			assert.Equal(t, tt.input, c.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"2.6.3.1", "abc", "2.x",
		// Trailing garbage in a segment must not degrade to a prefix match
		"2x", "2x.6", "2.6rc1", "2.", ".6", "2..3",
	}
	for _, input := range inputs {
		_, err := Parse(input)
		assert.Error(t, err, "Parse(%q)", input)
	}
}

func TestMatchesExact(t *testing.T) {
	c, err := Parse("2.6.3")
	require.NoError(t, err)

	assert.True(t, c.Matches("2.6.3"))
	assert.False(t, c.Matches("2.6.10"))
	assert.False(t, c.Matches("2.6"))

	// Patchlevel releases compare as whole strings
	c, err = Parse("2.0.0-p374")
	require.NoError(t, err)
	assert.True(t, c.Matches("2.0.0-p374"))
	assert.False(t, c.Matches("2.0.0"))
}

func TestMatchesPrefix(t *testing.T) {
	c, err := Parse("2.6")
	require.NoError(t, err)

	assert.True(t, c.Matches("2.6.3"))
	assert.True(t, c.Matches("2.6.10"))
	assert.False(t, c.Matches("2.7.0"))
	assert.False(t, c.Matches("3.6.1"))
	assert.False(t, c.Matches("not-a-version"))

	c, err = Parse("3")
	require.NoError(t, err)
	assert.True(t, c.Matches("3.0.0"))
	assert.True(t, c.Matches("3.2.1"))
	assert.False(t, c.Matches("2.7.8"))
}

func TestMatchesEmpty(t *testing.T) {
	c, err := Parse("")
	require.NoError(t, err)
	assert.True(t, c.Empty())
	assert.True(t, c.Matches("2.6.3"))
	assert.True(t, c.Matches("3.0.0"))
}

func TestBest(t *testing.T) {
	installed := []string{"2.5.1", "2.6.3", "2.6.10", "3.0.0"}

	c, err := Parse("2.6")
	require.NoError(t, err)
	best, ok := Best(installed, c)
	require.True(t, ok)
	assert.Equal(t, "2.6.10", best)

	c, err = Parse("")
	require.NoError(t, err)
	best, ok = Best(installed, c)
	require.True(t, ok)
	assert.Equal(t, "3.0.0", best)

	c, err = Parse("2.8")
	require.NoError(t, err)
	_, ok = Best(installed, c)
	assert.False(t, ok)
}

func TestSortDescending(t *testing.T) {
	versions := []string{"2.5.1", "3.0.0", "2.6.10", "2.6.3"}
	SortDescending(versions)
	assert.Equal(t, []string{"3.0.0", "2.6.10", "2.6.3", "2.5.1"}, versions)
}

func TestSortDescendingUnparseableLast(t *testing.T) {
	versions := []string{"garbage", "2.6.3", "3.0.0"}
	SortDescending(versions)
	assert.Equal(t, []string{"3.0.0", "2.6.3", "garbage"}, versions)
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		installed string
		api       string
		want      bool
	}{
		{"2.6.3", "2.6", true},
		{"2.7.0", "2.6", true},
		{"3.0.0", "2.6", true},
		{"2.5.9", "2.6", false},
		{"1.9.3", "2.6", false},
	}

	for _, tt := range tests {
		got, err := AtLeast(tt.installed, tt.api)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "AtLeast(%q, %q)", tt.installed, tt.api)
	}

	_, err := AtLeast("garbage", "2.6")
	assert.Error(t, err)
}
