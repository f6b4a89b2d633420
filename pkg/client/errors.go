// pkg/client/errors.go
package client

import (
	"errors"
	"fmt"
)

var (
	// ErrRubyNotFound indicates no installed Ruby satisfies the requested version
	ErrRubyNotFound = errors.New("ruby not found")

	// ErrInvalidSpec indicates the ruby spec string is malformed
	ErrInvalidSpec = errors.New("invalid ruby spec")

	// ErrUnknownClient indicates the client name is not a known version manager
	ErrUnknownClient = errors.New("unknown ruby client")

	// ErrClientNotAvailable indicates the version manager is not installed
	ErrClientNotAvailable = errors.New("ruby client not available")

	// ErrDownloadDisabled indicates a download would be needed but is not enabled
	ErrDownloadDisabled = errors.New("download disabled")

	// ErrHashMismatch indicates a hash verification failure
	ErrHashMismatch = errors.New("hash mismatch")
)

// Error wraps an error with additional context
type Error struct {
	Op   string // Operation that failed
	Spec string // Ruby spec if applicable (e.g. "rvm:2.6.3")
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Spec != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Spec, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfig reports whether err is a configuration error: the spec string or
// client selection is wrong, as opposed to no installation matching it.
func IsConfig(err error) bool {
	return errors.Is(err, ErrInvalidSpec) || errors.Is(err, ErrUnknownClient)
}

// IsNotFound reports whether err means no installation satisfied the request.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRubyNotFound) || errors.Is(err, ErrClientNotAvailable)
}
