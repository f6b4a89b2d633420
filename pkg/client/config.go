// pkg/client/config.go
package client

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv. The resolver itself never touches
// the environment; everything flows through an explicit Config.
const (
	EnvRuby        = "ROSY_RUBY"         // client[:version]
	EnvRubyVersion = "ROSY_RUBY_VERSION" // version override
	EnvStatic      = "ROSY_STATIC"       // force static linking
	EnvDownload    = "ROSY_DOWNLOAD"     // allow fetching a Ruby build
	EnvSkipLinking = "ROSY_SKIP_LINKING" // resolve paths only, emit no directives
	EnvCacheDir    = "ROSY_CACHE_DIR"    // where downloaded Rubies live
)

// Config holds resolver configuration
type Config struct {
	// DefaultClient is used when the spec names no client
	DefaultClient Type `yaml:"default_client"`

	// CachePath is where downloaded Rubies are built and cached
	CachePath string `yaml:"cache_path"`

	// Static forces static linking regardless of client
	Static bool `yaml:"static"`

	// Download allows fetching and building a Ruby when no local match exists
	Download bool `yaml:"download"`

	// DownloadPrebuilt fetches a prebuilt Ruby from the NixOS binary cache
	// instead of compiling from source
	DownloadPrebuilt bool `yaml:"download_prebuilt"`

	// SkipLinking resolves the installation but emits no linker directives.
	// Used for documentation builds.
	SkipLinking bool `yaml:"skip_linking"`

	// RequireAPI is the minimum "major.minor" whose C API the caller needs
	// (e.g. "2.6"). Resolution fails when the resolved Ruby is older.
	RequireAPI string `yaml:"require_api"`

	// Timeout for network operations during downloads
	Timeout time.Duration `yaml:"timeout"`

	// Debug enables debug logging
	Debug bool `yaml:"debug"`

	// Logger for custom logging
	Logger *log.Logger `yaml:"-"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DefaultClient: DefaultType,
		CachePath:     defaultCachePath(),
		Timeout:       2 * time.Minute,
	}
}

// LoadConfig loads configuration from a yaml file, falling back to defaults
// when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "rubylink", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DefaultClient == "" {
		cfg.DefaultClient = DefaultType
	}

	return cfg, nil
}

// SaveConfig saves configuration to a yaml file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "rubylink", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Environ is the subset of the process environment the resolver consults.
// Modeled as a struct so tests never mutate the real environment.
type Environ struct {
	Ruby        string
	RubyVersion string
	Static      string
	Download    string
	SkipLinking string
	CacheDir    string
}

// ReadEnviron captures the relevant ROSY_* variables from the process.
func ReadEnviron() Environ {
	return Environ{
		Ruby:        os.Getenv(EnvRuby),
		RubyVersion: os.Getenv(EnvRubyVersion),
		Static:      os.Getenv(EnvStatic),
		Download:    os.Getenv(EnvDownload),
		SkipLinking: os.Getenv(EnvSkipLinking),
		CacheDir:    os.Getenv(EnvCacheDir),
	}
}

// Apply folds the environment into the config and returns the parsed spec.
// ROSY_RUBY_VERSION overrides any version carried in ROSY_RUBY.
func (e Environ) Apply(cfg *Config) (*Spec, error) {
	var spec *Spec
	if e.Ruby == "" {
		spec = &Spec{Client: cfg.DefaultClient}
	} else {
		var err error
		spec, err = ParseSpec(e.Ruby)
		if err != nil {
			return nil, err
		}
	}
	if e.RubyVersion != "" {
		spec.Version = e.RubyVersion
	}

	if v, ok := parseBool(e.Static); ok {
		cfg.Static = v
	}
	if v, ok := parseBool(e.Download); ok {
		cfg.Download = v
	}
	if v, ok := parseBool(e.SkipLinking); ok {
		cfg.SkipLinking = v
	}
	if e.CacheDir != "" {
		cfg.CachePath = e.CacheDir
	}

	return spec, nil
}

func parseBool(s string) (value, ok bool) {
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		// Cargo-style feature envs are often just set to "1" or any text
		return true, true
	}
	return v, true
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "rubylink")
	}
	return filepath.Join(home, ".cache", "rubylink")
}
