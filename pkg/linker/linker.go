// pkg/linker/linker.go
package linker

import (
	"fmt"
	"io"
	"strings"
)

// Mode selects whether the Ruby runtime is embedded statically or loaded
// dynamically at runtime.
type Mode int

const (
	// Dynamic links against libruby.so / libruby.dylib
	Dynamic Mode = iota
	// Static embeds libruby-static.a
	Static
)

func (m Mode) String() string {
	if m == Static {
		return "static"
	}
	return "dynamic"
}

// Directives are the linker inputs handed to the surrounding build toolchain.
// They affect linkage only, never the produced binary's runtime behavior.
type Directives struct {
	// SearchPaths are -L directories, in priority order
	SearchPaths []string

	// Libs are library names linked with -l
	Libs []string

	// Frameworks are darwin frameworks linked with -framework
	Frameworks []string

	// Mode records how the Libs above were chosen
	Mode Mode
}

// LDFlags renders the directives as linker flags.
func (d *Directives) LDFlags() []string {
	var flags []string
	for _, p := range d.SearchPaths {
		flags = append(flags, "-L"+p)
	}
	for _, l := range d.Libs {
		flags = append(flags, "-l"+l)
	}
	for _, f := range d.Frameworks {
		flags = append(flags, "-framework", f)
	}
	return flags
}

// CFlags renders include directories as compiler flags.
func CFlags(includeDirs []string) []string {
	var flags []string
	for _, d := range includeDirs {
		flags = append(flags, "-I"+d)
	}
	return flags
}

// WriteEnv emits the flags as cgo environment assignments, one per line,
// for consumption by build scripts:
//
//	CGO_CFLAGS=-I/path/include ...
//	CGO_LDFLAGS=-L/path/lib -lruby ...
func WriteEnv(w io.Writer, cflags, ldflags []string) error {
	if _, err := fmt.Fprintf(w, "CGO_CFLAGS=%s\n", strings.Join(cflags, " ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "CGO_LDFLAGS=%s\n", strings.Join(ldflags, " "))
	return err
}

// ParseLibTokens extracts library names from a linker token string such as
// RbConfig's SOLIBS ("-lpthread -lgmp -ldl ..."). Non -l tokens are dropped.
func ParseLibTokens(s string) []string {
	var libs []string
	for _, tok := range strings.Fields(s) {
		if name, ok := strings.CutPrefix(tok, "-l"); ok && name != "" {
			libs = append(libs, name)
		}
	}
	return libs
}

// StaticLibName derives the -l name from a static archive file name,
// e.g. "libruby.2.6.3-static.a" -> "ruby.2.6.3-static".
func StaticLibName(archive string) (string, bool) {
	name, ok := strings.CutPrefix(archive, "lib")
	if !ok {
		return "", false
	}
	name, ok = strings.CutSuffix(name, ".a")
	if !ok {
		return "", false
	}
	return name, true
}
