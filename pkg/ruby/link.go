// pkg/ruby/link.go
package ruby

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rosy-lang/rubylink/pkg/linker"
)

// RbConfig keys consulted when building linker directives
const (
	keyHdrDir     = "rubyhdrdir"
	keyArchHdrDir = "rubyarchhdrdir"
	keyLibDir     = "libdir"
	keySoName     = "RUBY_SO_NAME"
	keyStaticLib  = "LIBRUBY_A"
	keySoLibs     = "SOLIBS"
	keyMainLibs   = "MAINLIBS"
)

// IncludeDirs returns the header search paths for the Ruby C API, most
// specific first (the arch-specific dir holds ruby/config.h).
func (r *Ruby) IncludeDirs(ctx context.Context) ([]string, error) {
	cfg, err := r.Config(ctx)
	if err != nil {
		return nil, err
	}
	return includeDirsFromConfig(cfg), nil
}

// LibDirs returns the library search paths.
func (r *Ruby) LibDirs(ctx context.Context) ([]string, error) {
	cfg, err := r.Config(ctx)
	if err != nil {
		return nil, err
	}
	return libDirsFromConfig(cfg), nil
}

// Directives builds the linker directives for the requested mode.
func (r *Ruby) Directives(ctx context.Context, mode linker.Mode) (*linker.Directives, error) {
	cfg, err := r.Config(ctx)
	if err != nil {
		return nil, err
	}
	return DirectivesFromConfig(cfg, mode, runtime.GOOS)
}

func includeDirsFromConfig(cfg map[string]string) []string {
	var dirs []string
	if d := cfg[keyHdrDir]; d != "" {
		dirs = append(dirs, d)
	}
	if d := cfg[keyArchHdrDir]; d != "" && d != cfg[keyHdrDir] {
		dirs = append(dirs, d)
	}
	return dirs
}

func libDirsFromConfig(cfg map[string]string) []string {
	var dirs []string
	if d := cfg[keyLibDir]; d != "" {
		dirs = append(dirs, d)
	}
	return dirs
}

// DirectivesFromConfig derives linker directives from an RbConfig table.
// Exported for callers that already hold a config dump (and for tests, which
// must not depend on an installed Ruby).
func DirectivesFromConfig(cfg map[string]string, mode linker.Mode, goos string) (*linker.Directives, error) {
	d := &linker.Directives{
		SearchPaths: libDirsFromConfig(cfg),
		Mode:        mode,
	}

	switch mode {
	case linker.Static:
		name, ok := linker.StaticLibName(cfg[keyStaticLib])
		if !ok {
			return nil, fmt.Errorf("rbconfig has no usable %s entry (%q)", keyStaticLib, cfg[keyStaticLib])
		}
		d.Libs = append(d.Libs, name)

		// Static libruby does not carry its own dependencies
		aux := cfg[keyMainLibs]
		if aux == "" {
			aux = cfg[keySoLibs]
		}
		d.Libs = append(d.Libs, linker.ParseLibTokens(aux)...)

		if goos == "darwin" {
			d.Frameworks = append(d.Frameworks, "CoreFoundation")
		}

	case linker.Dynamic:
		name := cfg[keySoName]
		if name == "" {
			name = "ruby"
		}
		d.Libs = append(d.Libs, name)

	default:
		return nil, fmt.Errorf("unknown link mode %d", mode)
	}

	return d, nil
}
