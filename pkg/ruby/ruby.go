// pkg/ruby/ruby.go
package ruby

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
)

// Install locates one Ruby installation on disk
type Install struct {
	Client  string // Manager that found it ("rvm", "system", ...)
	Prefix  string // Installation root
	Exe     string // Path to the ruby executable
	Version string // Program version, e.g. "2.6.3"
}

// ExePath returns the conventional executable path under an installation
// prefix. Managers lay rubies out as <prefix>/bin/ruby.
func ExePath(prefix string) string {
	return filepath.Join(prefix, "bin", "ruby")
}

// Ruby wraps an installation with lazy access to its RbConfig table.
// All queries shell out to the installation's own interpreter, so the
// reported paths are exactly what that Ruby was built with.
type Ruby struct {
	*Install

	cfg    map[string]string
	logger *log.Logger
}

// New wraps an installation. A nil logger discards debug output.
func New(inst *Install, logger *log.Logger) *Ruby {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Ruby{Install: inst, logger: logger}
}

// LoadExe interrogates a ruby executable for its version and prefix.
// Used when an installation is identified by executable rather than by a
// manager's directory layout (the system client).
func LoadExe(ctx context.Context, exe string) (*Install, error) {
	out, err := run(ctx, exe, "-rrbconfig", "-e",
		`print RUBY_VERSION, "\n", RbConfig::CONFIG["prefix"]`)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", exe, err)
	}

	lines := strings.SplitN(strings.TrimSpace(out), "\n", 2)
	if len(lines) != 2 || lines[0] == "" {
		return nil, fmt.Errorf("querying %s: unexpected output %q", exe, out)
	}

	return &Install{
		Prefix:  strings.TrimSpace(lines[1]),
		Exe:     exe,
		Version: strings.TrimSpace(lines[0]),
	}, nil
}

// Config returns the interpreter's full RbConfig::CONFIG table, cached after
// the first query.
func (r *Ruby) Config(ctx context.Context) (map[string]string, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}

	out, err := run(ctx, r.Exe, "-rrbconfig", "-e",
		`RbConfig::CONFIG.each { |k, v| print k, "=", v, "\n" }`)
	if err != nil {
		return nil, fmt.Errorf("querying rbconfig: %w", err)
	}

	r.cfg = ParseConfig(out)
	r.logger.Printf("loaded %d rbconfig entries from %s", len(r.cfg), r.Exe)
	return r.cfg, nil
}

// ConfigValue returns one RbConfig::CONFIG entry, empty when absent.
func (r *Ruby) ConfigValue(ctx context.Context, key string) (string, error) {
	cfg, err := r.Config(ctx)
	if err != nil {
		return "", err
	}
	return cfg[key], nil
}

func run(ctx context.Context, exe string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// ParseConfig parses "key=value" lines as printed by the rbconfig query.
func ParseConfig(out string) map[string]string {
	cfg := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		cfg[parts[0]] = parts[1]
	}
	return cfg
}
