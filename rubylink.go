// rubylink.go
package rubylink

import (
	"context"
	"fmt"
	"io"
	"log"
	"runtime"

	"github.com/rosy-lang/rubylink/pkg/chruby"
	"github.com/rosy-lang/rubylink/pkg/client"
	"github.com/rosy-lang/rubylink/pkg/linker"
	"github.com/rosy-lang/rubylink/pkg/nixcache"
	"github.com/rosy-lang/rubylink/pkg/platform"
	"github.com/rosy-lang/rubylink/pkg/rbenv"
	"github.com/rosy-lang/rubylink/pkg/ruby"
	"github.com/rosy-lang/rubylink/pkg/rvm"
	"github.com/rosy-lang/rubylink/pkg/srcbuild"
	"github.com/rosy-lang/rubylink/pkg/system"
	"github.com/rosy-lang/rubylink/pkg/version"
)

// Re-export client types for convenience
type (
	ClientType = client.Type
	Client     = client.Client
	Config     = client.Config
	Spec       = client.Spec
	Install    = ruby.Install
	LinkMode   = linker.Mode
	Directives = linker.Directives
)

// Re-export client constants
const (
	ClientSystem = client.TypeSystem
	ClientRvm    = client.TypeRvm
	ClientRbenv  = client.TypeRbenv
	ClientChruby = client.TypeChruby
	ClientAuto   = client.TypeAuto

	LinkDynamic = linker.Dynamic
	LinkStatic  = linker.Static
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return client.DefaultConfig()
}

// ParseSpec parses a "client[:version]" string such as "rvm:2.6.0"
func ParseSpec(s string) (*Spec, error) {
	return client.ParseSpec(s)
}

// NewRuby wraps an installation for RbConfig queries
func NewRuby(inst *ruby.Install, logger *log.Logger) *ruby.Ruby {
	return ruby.New(inst, logger)
}

// ResolvedRuby is the product of one resolution: where the interpreter's
// headers and libraries live, and the directives the linker needs. It is
// consumed by the build step and then discarded.
type ResolvedRuby struct {
	Ruby        *ruby.Ruby
	IncludeDirs []string
	LibDirs     []string
	Mode        linker.Mode

	// Directives is nil when linking was skipped
	Directives *linker.Directives
}

// CFlags renders the compiler flags for the resolved installation.
func (r *ResolvedRuby) CFlags() []string {
	return linker.CFlags(r.IncludeDirs)
}

// LDFlags renders the linker flags for the resolved installation.
func (r *ResolvedRuby) LDFlags() []string {
	if r.Directives == nil {
		return nil
	}
	return r.Directives.LDFlags()
}

// Resolver locates a Ruby installation through one version-manager client
type Resolver struct {
	client client.Client
	config *client.Config
	logger *log.Logger
}

// NewResolver creates a resolver for the given client. The client set is
// closed; anything else is a configuration error.
func NewResolver(clientType client.Type, cfg *client.Config) (*Resolver, error) {
	if cfg == nil {
		cfg = client.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var c client.Client
	switch clientType {
	case client.TypeSystem:
		c = system.NewManager(&system.Config{Debug: cfg.Debug, Logger: cfg.Logger})
	case client.TypeRvm:
		c = rvm.NewManager(&rvm.Config{Debug: cfg.Debug, Logger: cfg.Logger})
	case client.TypeRbenv:
		c = rbenv.NewManager(&rbenv.Config{Debug: cfg.Debug, Logger: cfg.Logger})
	case client.TypeChruby:
		c = chruby.NewManager(&chruby.Config{Debug: cfg.Debug, Logger: cfg.Logger})
	case client.TypeAuto:
		plat, err := platform.Detect()
		if err != nil {
			return nil, err
		}
		if plat.Preferred == "" {
			return nil, fmt.Errorf("no ruby client detected: %w", client.ErrClientNotAvailable)
		}
		logger.Printf("auto-detected client: %s", plat.Preferred)
		return NewResolver(plat.Preferred, cfg)
	default:
		return nil, fmt.Errorf("client %q: %w", clientType, client.ErrUnknownClient)
	}

	return &Resolver{client: c, config: cfg, logger: logger}, nil
}

// Client returns the underlying version-manager client
func (r *Resolver) Client() client.Client {
	return r.client
}

// List enumerates the installations the client knows about
func (r *Resolver) List(ctx context.Context) ([]*ruby.Install, error) {
	return r.client.List(ctx)
}

// Resolve locates the installation matching the version constraint and
// derives its include paths, library paths, and linker directives. When no
// local installation matches and downloads are enabled, a Ruby is fetched
// and built into the cache first.
func (r *Resolver) Resolve(ctx context.Context, constraint string) (*ResolvedRuby, error) {
	inst, err := r.client.Resolve(ctx, constraint)
	if err != nil {
		if !client.IsNotFound(err) {
			return nil, err
		}
		if !r.config.Download {
			return nil, fmt.Errorf("%w (set download to fetch one)", err)
		}

		inst, err = r.download(ctx, constraint)
		if err != nil {
			return nil, err
		}
	}

	if r.config.RequireAPI != "" {
		ok, err := version.AtLeast(inst.Version, r.config.RequireAPI)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("ruby %s lacks the %s API: %w",
				inst.Version, r.config.RequireAPI, client.ErrRubyNotFound)
		}
	}

	mode := linker.Dynamic
	if r.config.Static {
		mode = linker.Static
	}

	rb := ruby.New(inst, r.config.Logger)
	resolved := &ResolvedRuby{Ruby: rb, Mode: mode}

	if r.config.SkipLinking {
		r.logger.Printf("skip-linking set, emitting no directives for %s", inst.Prefix)
		return resolved, nil
	}

	if resolved.IncludeDirs, err = rb.IncludeDirs(ctx); err != nil {
		return nil, err
	}
	if resolved.LibDirs, err = rb.LibDirs(ctx); err != nil {
		return nil, err
	}
	if resolved.Directives, err = rb.Directives(ctx, mode); err != nil {
		return nil, err
	}

	return resolved, nil
}

// download provisions the requested Ruby into the cache. Partial version
// constraints cannot name a tarball, so an exact version is required here.
func (r *Resolver) download(ctx context.Context, constraint string) (*ruby.Install, error) {
	c, err := version.Parse(constraint)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, client.ErrInvalidSpec)
	}

	exact, ok := c.Exact()
	if !ok {
		return nil, fmt.Errorf("download needs an exact version, got %q: %w",
			constraint, client.ErrRubyNotFound)
	}

	if r.config.DownloadPrebuilt {
		plat, err := nixcache.DetectPlatform(runtime.GOOS, runtime.GOARCH)
		if err != nil {
			return nil, err
		}
		fetcher := nixcache.NewFetcher(&nixcache.Config{
			CachePath: r.config.CachePath,
			Timeout:   r.config.Timeout,
			Debug:     r.config.Debug,
			Logger:    r.config.Logger,
		})
		return fetcher.Install(ctx, exact, plat)
	}

	builder := srcbuild.NewBuilder(&srcbuild.Config{
		CachePath: r.config.CachePath,
		Timeout:   r.config.Timeout,
		Debug:     r.config.Debug,
		Logger:    r.config.Logger,
	})
	return builder.Install(ctx, exact)
}

// ResolveFromEnv performs one whole build-time resolution driven by the
// ROSY_* environment: parse the spec, pick the client, locate the Ruby, and
// derive its linker directives. This is the entry point build scripts use.
func ResolveFromEnv(ctx context.Context) (*ResolvedRuby, error) {
	return ResolveEnviron(ctx, client.ReadEnviron(), nil)
}

// ResolveEnviron is ResolveFromEnv with the environment and base config made
// explicit, keeping resolution testable without process-level mutation.
func ResolveEnviron(ctx context.Context, env client.Environ, cfg *client.Config) (*ResolvedRuby, error) {
	if cfg == nil {
		cfg = client.DefaultConfig()
	}

	spec, err := env.Apply(cfg)
	if err != nil {
		return nil, &Error{Op: "resolve", Spec: env.Ruby, Err: err}
	}

	resolver, err := NewResolver(spec.Client, cfg)
	if err != nil {
		return nil, &Error{Op: "resolve", Spec: spec.String(), Err: err}
	}

	resolved, err := resolver.Resolve(ctx, spec.Version)
	if err != nil {
		return nil, &Error{Op: "resolve", Spec: spec.String(), Err: err}
	}

	return resolved, nil
}
