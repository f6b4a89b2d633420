// pkg/rvm/constants.go
package rvm

const (
	// RootEnvVar is the environment variable RVM itself uses for its root
	RootEnvVar = "rvm_path"

	// DefaultUserRoot is the per-user RVM root, relative to $HOME
	DefaultUserRoot = ".rvm"

	// SystemRoot is the multi-user RVM root
	SystemRoot = "/usr/local/rvm"

	// rubiesSubdir holds one directory per installed Ruby under the root
	rubiesSubdir = "rubies"

	// rubyDirPrefix prefixes each installation directory, e.g. "ruby-2.6.3"
	rubyDirPrefix = "ruby-"
)
