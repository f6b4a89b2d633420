// pkg/rbenv/manager.go
package rbenv

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rosy-lang/rubylink/pkg/client"
	"github.com/rosy-lang/rubylink/pkg/ruby"
	"github.com/rosy-lang/rubylink/pkg/version"
)

// Config configures the rbenv client
type Config struct {
	Root   string // rbenv root; defaults to $RBENV_ROOT, then ~/.rbenv
	Debug  bool
	Logger *log.Logger
}

// Manager locates Rubies installed by rbenv (or ruby-build)
type Manager struct {
	root   string
	logger *log.Logger
}

// NewManager creates an rbenv client
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	root := cfg.Root
	if root == "" {
		if p := os.Getenv(RootEnvVar); p != "" {
			root = p
		} else if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, DefaultRoot)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[RBENV] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Manager{root: root, logger: logger}
}

// Name returns the client name
func (m *Manager) Name() string { return "rbenv" }

// Root returns the rbenv root in use
func (m *Manager) Root() string { return m.root }

// IsAvailable checks whether the rbenv versions directory exists
func (m *Manager) IsAvailable() bool {
	info, err := os.Stat(filepath.Join(m.root, versionsSubdir))
	return err == nil && info.IsDir()
}

// List enumerates installed Rubies, newest first
func (m *Manager) List(ctx context.Context) ([]*ruby.Install, error) {
	dir := filepath.Join(m.root, versionsSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("rbenv root %s: %w", m.root, client.ErrClientNotAvailable)
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	byVersion := make(map[string]*ruby.Install)
	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if name == "" || name[0] < '0' || name[0] > '9' {
			// skip hidden entries and non-MRI rubies (jruby-*, mruby-*, ...)
			continue
		}

		prefix := filepath.Join(dir, name)
		byVersion[name] = &ruby.Install{
			Client:  m.Name(),
			Prefix:  prefix,
			Exe:     ruby.ExePath(prefix),
			Version: name,
		}
		versions = append(versions, name)
	}

	version.SortDescending(versions)
	installs := make([]*ruby.Install, 0, len(versions))
	for _, v := range versions {
		installs = append(installs, byVersion[v])
	}

	m.logger.Printf("found %d rubies under %s", len(installs), dir)
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

	return nil, fmt.Errorf("rbenv has no ruby matching %q: %w", constraint, client.ErrRubyNotFound)
}
