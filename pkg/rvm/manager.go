// pkg/rvm/manager.go
package rvm

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

// Config configures the RVM client
type Config struct {
	Root   string // RVM root; defaults to $rvm_path, ~/.rvm, /usr/local/rvm
	Debug  bool
	Logger *log.Logger
}

// Manager locates Rubies installed by RVM
type Manager struct {
	root   string
	logger *log.Logger
}

// NewManager creates an RVM client
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	root := cfg.Root
	if root == "" {
		root = detectRoot()
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[RVM] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Manager{root: root, logger: logger}
}

func detectRoot() string {
	if p := os.Getenv(RootEnvVar); p != "" {
		return p
	}
	if home, err := os.UserHomeDir(); err == nil {
		user := filepath.Join(home, DefaultUserRoot)
		if _, err := os.Stat(user); err == nil {
			return user
		}
	}
	return SystemRoot
}

// Name returns the client name
func (m *Manager) Name() string { return "rvm" }

// Root returns the RVM root in use
func (m *Manager) Root() string { return m.root }

// IsAvailable checks whether the RVM rubies directory exists
func (m *Manager) IsAvailable() bool {
	info, err := os.Stat(filepath.Join(m.root, rubiesSubdir))
	return err == nil && info.IsDir()
}

// List enumerates installed Rubies, newest first
func (m *Manager) List(ctx context.Context) ([]*ruby.Install, error) {
	dir := filepath.Join(m.root, rubiesSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("rvm root %s: %w", m.root, client.ErrClientNotAvailable)
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	byVersion := make(map[string]*ruby.Install)
	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, rubyDirPrefix) {
			// "default" symlink and non-MRI rubies (jruby-*, truffleruby-*)
			continue
		}

		prefix := filepath.Join(dir, name)
		v := strings.TrimPrefix(name, rubyDirPrefix)
		byVersion[v] = &ruby.Install{
			Client:  m.Name(),
			Prefix:  prefix,
			Exe:     ruby.ExePath(prefix),
			Version: v,
		}
		versions = append(versions, v)
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

	return nil, fmt.Errorf("rvm has no ruby matching %q: %w", constraint, client.ErrRubyNotFound)
}
