// pkg/rbenv/constants.go
package rbenv

const (
	// RootEnvVar is the environment variable rbenv itself uses for its root
	RootEnvVar = "RBENV_ROOT"

	// DefaultRoot is the per-user rbenv root, relative to $HOME
	DefaultRoot = ".rbenv"

	// versionsSubdir holds one directory per installed Ruby under the root.
	// Unlike RVM, the directory name is the bare version string.
	versionsSubdir = "versions"
)
