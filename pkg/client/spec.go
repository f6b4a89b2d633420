// pkg/client/spec.go
package client

import (
	"fmt"
	"strings"
)

// Spec is a parsed ruby spec of the form "client[:version]", e.g. "rvm:2.6.0".
// Parsed once per build invocation and immutable afterwards.
type Spec struct {
	Client  Type
	Version string // empty when no version constraint was given
}

// ParseSpec parses a "client[:version]" string. An empty string selects the
// default client with no version constraint. Unknown client names are a
// configuration error, not a lookup failure.
func ParseSpec(s string) (*Spec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return &Spec{Client: DefaultType}, nil
	}

	name, version := s, ""
	if i := strings.Index(s, ":"); i >= 0 {
		name, version = s[:i], s[i+1:]
	}

	if name == "" {
		return nil, fmt.Errorf("parsing spec %q: %w", s, ErrInvalidSpec)
	}

	t := Type(strings.ToLower(name))
	if !Known(t) {
		return nil, fmt.Errorf("client %q: %w", name, ErrUnknownClient)
	}

	return &Spec{Client: t, Version: version}, nil
}

// String renders the spec back to client[:version] form.
func (s *Spec) String() string {
	if s.Version == "" {
		return string(s.Client)
	}
	return fmt.Sprintf("%s:%s", s.Client, s.Version)
}
