// errors.go
package rubylink

import "github.com/rosy-lang/rubylink/pkg/client"

// Re-export error values so callers can match without importing pkg/client
var (
	ErrRubyNotFound       = client.ErrRubyNotFound
	ErrInvalidSpec        = client.ErrInvalidSpec
	ErrUnknownClient      = client.ErrUnknownClient
	ErrClientNotAvailable = client.ErrClientNotAvailable
	ErrDownloadDisabled   = client.ErrDownloadDisabled
	ErrHashMismatch       = client.ErrHashMismatch
)

// Error wraps an error with operation and spec context
type Error = client.Error

// IsConfig reports whether err is a configuration error (malformed spec or
// unknown client), as opposed to no installation being found.
func IsConfig(err error) bool { return client.IsConfig(err) }

// IsNotFound reports whether err means no installation satisfied the request.
func IsNotFound(err error) bool { return client.IsNotFound(err) }
