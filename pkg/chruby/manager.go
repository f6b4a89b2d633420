// pkg/chruby/manager.go
package chruby

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rosy-lang/rubylink/pkg/client"
	"github.com/rosy-lang/rubylink/pkg/ruby"
	"github.com/rosy-lang/rubylink/pkg/version"
)

// Config configures the chruby client
type Config struct {
	Roots  []string // rubies directories; defaults to ~/.rubies and /opt/rubies
	Debug  bool
	Logger *log.Logger
}

// Manager locates Rubies laid out for chruby. chruby has no root of its own;
// it scans a fixed set of rubies directories.
type Manager struct {
	roots  []string
	logger *log.Logger
}

// NewManager creates a chruby client
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	roots := cfg.Roots
	if len(roots) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			roots = append(roots, filepath.Join(home, DefaultUserRoot))
		}
		roots = append(roots, SystemRoot)
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[CHRUBY] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Manager{roots: roots, logger: logger}
}

// Name returns the client name
func (m *Manager) Name() string { return "chruby" }

// Roots returns the rubies directories in search order
func (m *Manager) Roots() []string { return m.roots }

// IsAvailable checks whether any rubies directory exists
func (m *Manager) IsAvailable() bool {
	for _, root := range m.roots {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// List enumerates installed Rubies across all roots, newest first.
// Earlier roots win when the same version appears twice.
func (m *Manager) List(ctx context.Context) ([]*ruby.Install, error) {
	byVersion := make(map[string]*ruby.Install)
	var versions []string
	found := false

	for _, root := range m.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", root, err)
		}
		found = true

		for _, entry := range entries {
			name := entry.Name()
			v := strings.TrimPrefix(name, rubyDirPrefix)
			if v == "" || v[0] < '0' || v[0] > '9' {
				continue
			}
			if _, ok := byVersion[v]; ok {
				continue
			}

			prefix := filepath.Join(root, name)
			byVersion[v] = &ruby.Install{
				Client:  m.Name(),
				Prefix:  prefix,
				Exe:     ruby.ExePath(prefix),
				Version: v,
			}
			versions = append(versions, v)
		}
	}

	if !found {
		return nil, fmt.Errorf("no rubies directory in %v: %w", m.roots, client.ErrClientNotAvailable)
	}

	version.SortDescending(versions)
	installs := make([]*ruby.Install, 0, len(versions))
	for _, v := range versions {
		installs = append(installs, byVersion[v])
	}

	m.logger.Printf("found %d rubies under %v", len(installs), m.roots)
	return installs, nil
}

// Resolve picks the newest installation satisfying the version constraint
func (m *Manager) Resolve(ctx context.Context, constraint string) (*ruby.Install, error) {
	c, err := version.Parse(constraint)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, client.ErrInvalidSpec)
	}

	installs, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, inst := range installs {
		if c.Matches(inst.Version) {
			m.logger.Printf("resolved %q to %s", constraint, inst.Prefix)
			return inst, nil
		}
	}

	return nil, fmt.Errorf("chruby has no ruby matching %q: %w", constraint, client.ErrRubyNotFound)
}
