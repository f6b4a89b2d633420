// pkg/nixcache/types.go
package nixcache

import (
	"log"
	"time"
)

const (
	// DefaultCacheURL is the NixOS binary cache
	DefaultCacheURL = "https://cache.nixos.org"

	// DefaultHydraURL serves build metadata for nixpkgs jobs
	DefaultHydraURL = "https://hydra.nixos.org"

	// rubiesSubdir matches the srcbuild layout so fetched rubies resolve
	// the same way as built ones
	rubiesSubdir = "rubies"
)

// Config configures the binary-cache fetcher
type Config struct {
	CacheURL  string        // Default: https://cache.nixos.org
	HydraURL  string        // Default: https://hydra.nixos.org
	CachePath string        // Where fetched rubies are unpacked
	Timeout   time.Duration
	Debug     bool        // Enable debug logging
	Logger    *log.Logger // Custom logger (optional)
}

// NARInfo contains metadata about a store path in the binary cache
type NARInfo struct {
	StorePath   string
	URL         string
	Compression string
	FileHash    string
	FileSize    int64
	NarHash     string
	NarSize     int64
	References  []string
	Deriver     string
	Signature   string
}
