// pkg/chruby/constants.go
package chruby

const (
	// DefaultUserRoot is the per-user rubies directory, relative to $HOME
	DefaultUserRoot = ".rubies"

	// SystemRoot is the system-wide rubies directory
	SystemRoot = "/opt/rubies"

	// rubyDirPrefix prefixes MRI installation directories, e.g. "ruby-2.6.3".
	// chruby also accepts bare version names.
	rubyDirPrefix = "ruby-"
)
