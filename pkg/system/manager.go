// pkg/system/manager.go
package system

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/rosy-lang/rubylink/pkg/client"
	"github.com/rosy-lang/rubylink/pkg/ruby"
	"github.com/rosy-lang/rubylink/pkg/version"
)

// DefaultExe is the executable looked up on PATH
const DefaultExe = "ruby"

// Config configures the system client
type Config struct {
	Exe    string // ruby executable name or path; defaults to "ruby" on PATH
	Debug  bool
	Logger *log.Logger
}

// Manager resolves against the bare system Ruby: whatever executable PATH
// lookup yields. There is exactly zero or one installation to offer.
type Manager struct {
	exe    string
	logger *log.Logger
}

// NewManager creates a system client
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	exe := cfg.Exe
	if exe == "" {
		exe = DefaultExe
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[SYSTEM] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Manager{exe: exe, logger: logger}
}

// Name returns the client name
func (m *Manager) Name() string { return "system" }

// IsAvailable checks whether a ruby executable is on PATH
func (m *Manager) IsAvailable() bool {
	_, err := exec.LookPath(m.exe)
	return err == nil
}

// List returns the system Ruby as a single-element list
func (m *Manager) List(ctx context.Context) ([]*ruby.Install, error) {
	inst, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	return []*ruby.Install{inst}, nil
}

// Resolve returns the system Ruby when it satisfies the constraint
func (m *Manager) Resolve(ctx context.Context, constraint string) (*ruby.Install, error) {
	c, err := version.Parse(constraint)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, client.ErrInvalidSpec)
	}

	inst, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	if !c.Matches(inst.Version) {
		return nil, fmt.Errorf("system ruby is %s, want %q: %w",
			inst.Version, constraint, client.ErrRubyNotFound)
	}

	m.logger.Printf("resolved %q to %s", constraint, inst.Exe)
	return inst, nil
}

func (m *Manager) load(ctx context.Context) (*ruby.Install, error) {
	path, err := exec.LookPath(m.exe)
	if err != nil {
		return nil, fmt.Errorf("%s not on PATH: %w", m.exe, client.ErrClientNotAvailable)
	}

	inst, err := ruby.LoadExe(ctx, path)
	if err != nil {
		return nil, err
	}
	inst.Client = m.Name()
	return inst, nil
}
