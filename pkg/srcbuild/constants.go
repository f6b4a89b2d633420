// pkg/srcbuild/constants.go
package srcbuild

const (
	// DefaultMirrorURL serves official Ruby release tarballs,
	// organized as <mirror>/<major.minor>/ruby-<version>.tar.xz
	DefaultMirrorURL = "https://cache.ruby-lang.org/pub/ruby"

	// archivesSubdir holds downloaded tarballs under the cache path
	archivesSubdir = "archives"

	// srcSubdir holds extracted source trees under the cache path
	srcSubdir = "src"

	// rubiesSubdir holds finished installations under the cache path.
	// The layout matches rbenv's versions directory so resolved installs
	// look the same regardless of origin.
	rubiesSubdir = "rubies"
)
