// pkg/client/types.go
package client

import (
	"context"

	"github.com/rosy-lang/rubylink/pkg/ruby"
)

// Type identifies a Ruby version-manager client
type Type string

const (
	// TypeSystem uses the ruby executable on PATH
	TypeSystem Type = "system"
	// TypeRvm uses installations managed by RVM
	TypeRvm Type = "rvm"
	// TypeRbenv uses installations managed by rbenv
	TypeRbenv Type = "rbenv"
	// TypeChruby uses installations managed by chruby
	TypeChruby Type = "chruby"
	// TypeAuto picks the first available manager with a matching Ruby
	TypeAuto Type = "auto"
)

// DefaultType is used when ROSY_RUBY is unset.
const DefaultType = TypeSystem

// Known reports whether t names a supported client.
func Known(t Type) bool {
	switch t {
	case TypeSystem, TypeRvm, TypeRbenv, TypeChruby, TypeAuto:
		return true
	}
	return false
}

// Client defines the interface that all version-manager clients implement.
// Each client knows the directory layout of one manager and can enumerate
// the Rubies installed under it.
type Client interface {
	// Name returns the client name (e.g. "rvm", "system")
	Name() string

	// IsAvailable checks if this manager is present on the system
	IsAvailable() bool

	// List enumerates installed Rubies, newest version first
	List(ctx context.Context) ([]*ruby.Install, error)

	// Resolve picks the installation matching the version constraint.
	// An empty constraint matches the newest installation.
	Resolve(ctx context.Context, constraint string) (*ruby.Install, error)
}
