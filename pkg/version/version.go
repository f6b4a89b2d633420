// pkg/version/version.go
package version

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
)

// Constraint is a requested Ruby version. A full "X.Y.Z" requires an exact
// match; a partial "X" or "X.Y" is a prefix match; empty matches anything.
type Constraint struct {
	raw      string
	segments []uint64
	exact    bool
}

// Parse parses a version constraint string.
func Parse(s string) (*Constraint, error) {
	s = strings.TrimSpace(s)
	c := &Constraint{raw: s}
	if s == "" {
		return c, nil
	}

	parts := strings.SplitN(s, "-", 2)
	numbers := strings.Split(parts[0], ".")
	if len(numbers) > 3 {
		return nil, fmt.Errorf("invalid version constraint %q", s)
	}
	for _, n := range numbers {
		v, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid version constraint %q", s)
		}
		c.segments = append(c.segments, v)
	}

	// Exact when all three segments are present (plus any "-p374" suffix)
	c.exact = len(numbers) == 3
	return c, nil
}

// Empty reports whether the constraint matches any version.
func (c *Constraint) Empty() bool {
	return c == nil || c.raw == ""
}

// Exact returns the version string when the constraint pins one exactly.
func (c *Constraint) Exact() (string, bool) {
	if c.Empty() || !c.exact {
		return "", false
	}
	return c.raw, true
}

// String returns the original constraint string.
func (c *Constraint) String() string {
	if c == nil {
		return ""
	}
	return c.raw
}

// Matches reports whether an installed version string satisfies the
// constraint. Exact constraints compare the full string; partial constraints
// compare leading segments.
func (c *Constraint) Matches(installed string) bool {
	if c.Empty() {
		return true
	}
	if c.exact {
		return installed == c.raw
	}

	v, err := semver.NewVersion(installed)
	if err != nil {
		return false
	}

	got := []uint64{uint64(v.Major()), uint64(v.Minor()), uint64(v.Patch())}
	for i, want := range c.segments {
		if got[i] != want {
			return false
		}
	}
	return true
}

// Best picks the newest version from installed that satisfies the constraint.
func Best(installed []string, c *Constraint) (string, bool) {
	var candidates []string
	for _, v := range installed {
		if c.Matches(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	SortDescending(candidates)
	return candidates[0], true
}

// SortDescending orders version strings newest first. Strings that do not
// parse as versions sort last, in their original order.
func SortDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, erri := semver.NewVersion(versions[i])
		vj, errj := semver.NewVersion(versions[j])
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return vi.GreaterThan(vj)
	})
}

// AtLeast reports whether installed is at least the "major.minor" given in
// api. Used for gating version-specific C APIs.
func AtLeast(installed, api string) (bool, error) {
	v, err := semver.NewVersion(installed)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", installed, err)
	}
	min, err := semver.NewVersion(api)
	if err != nil {
		return false, fmt.Errorf("parsing api version %q: %w", api, err)
	}
	return !v.LessThan(min), nil
}
