// pkg/nixcache/manager.go
package nixcache

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver"
	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"

	"github.com/rosy-lang/rubylink/pkg/client"
	"github.com/rosy-lang/rubylink/pkg/ruby"
)

// hydraBuildInfo represents the JSON response from Hydra
type hydraBuildInfo struct {
	ID           int `json:"id"`
	BuildStatus  int `json:"buildstatus"` // 0 = succeeded
	Buildoutputs map[string]struct {
		Path string `json:"path"`
	} `json:"buildoutputs"`
}

// Fetcher pulls a prebuilt Ruby out of the NixOS binary cache instead of
// compiling one. Substantially faster than a source build, at the cost of
// only offering the versions nixpkgs carries.
type Fetcher struct {
	httpClient *http.Client
	config     *Config
	logger     *log.Logger
}

// NewFetcher creates a binary-cache fetcher
func NewFetcher(cfg *Config) *Fetcher {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.CacheURL == "" {
		cfg.CacheURL = DefaultCacheURL
	}
	if cfg.HydraURL == "" {
		cfg.HydraURL = DefaultHydraURL
	}
	if cfg.CachePath == "" {
		home, _ := os.UserHomeDir()
		cfg.CachePath = filepath.Join(home, ".cache", "rubylink")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[NIXCACHE] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
		logger:     logger,
	}
}

// AttrForVersion maps a Ruby version to the nixpkgs attribute that carries
// it, e.g. "2.6.3" -> "ruby_2_6".
func AttrForVersion(version string) (string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("invalid ruby version %q: %w", version, err)
	}
	return fmt.Sprintf("ruby_%d_%d", v.Major(), v.Minor()), nil
}

// Install fetches the prebuilt Ruby for version into the cache. Hydra serves
// the latest build of the version's attribute, so the unpacked interpreter is
// interrogated afterwards and a different patch release is rejected.
func (f *Fetcher) Install(ctx context.Context, version, platform string) (*ruby.Install, error) {
	prefix := filepath.Join(f.config.CachePath, rubiesSubdir, version)
	exe := ruby.ExePath(prefix)
	if _, err := os.Stat(exe); err == nil {
		f.logger.Printf("using cached fetch: %s", prefix)
		return &ruby.Install{Client: "nixcache", Prefix: prefix, Exe: exe, Version: version}, nil
	}

	attr, err := AttrForVersion(version)
	if err != nil {
		return nil, err
	}

	hash, err := f.resolveStoreHash(ctx, attr, platform)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w (%v)", attr, client.ErrRubyNotFound, err)
	}

	narInfo, err := f.getNARInfo(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("getting narinfo: %w", err)
	}

	narPath := filepath.Join(f.config.CachePath, archiveName(version, narInfo.Compression))
	if err := f.downloadNAR(ctx, narInfo, narPath); err != nil {
		return nil, fmt.Errorf("downloading nar: %w", err)
	}
	defer os.Remove(narPath)

	if err := f.verifyFileHash(narPath, narInfo.FileHash); err != nil {
		return nil, err
	}

	if err := f.extractNAR(narPath, prefix, narInfo.Compression); err != nil {
		return nil, fmt.Errorf("extracting nar: %w", err)
	}

	if _, err := os.Stat(exe); err != nil {
		return nil, fmt.Errorf("fetched store path has no ruby executable: %w", client.ErrRubyNotFound)
	}

	loaded, err := ruby.LoadExe(ctx, exe)
	if err != nil {
		return nil, fmt.Errorf("verifying fetched ruby: %w", err)
	}
	if err := verifyInstalledVersion(version, loaded.Version); err != nil {
		os.RemoveAll(prefix)
		return nil, err
	}

	f.logger.Printf("fetched ruby %s into %s", version, prefix)
	return &ruby.Install{Client: "nixcache", Prefix: prefix, Exe: exe, Version: version}, nil
}

// verifyInstalledVersion rejects an interpreter whose reported version is not
// the one the caller asked for. The binary cache only carries one patch
// release per minor series, so a mismatch here is a not-found, not a defect.
func verifyInstalledVersion(requested, actual string) error {
	if actual != requested {
		return fmt.Errorf("binary cache serves ruby %s, want %s: %w",
			actual, requested, client.ErrRubyNotFound)
	}
	return nil
}

func archiveName(version, compression string) string {
	return fmt.Sprintf("ruby-%s.nar.%s", version, compression)
}

// resolveStoreHash queries Hydra for the latest successful build of the
// attribute and returns the store hash of its "out" output.
func (f *Fetcher) resolveStoreHash(ctx context.Context, attr, platform string) (string, error) {
	url := fmt.Sprintf("%s/job/nixos/trunk-combined/nixpkgs.%s.%s/latest",
		f.config.HydraURL, attr, platform)
	f.logger.Printf("resolving %s via %s", attr, url)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating hydra request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "rubylink/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hydra request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("attribute %q not on hydra for platform %q (status: %d)", attr, platform, resp.StatusCode)
	}

	var buildInfo hydraBuildInfo
	if err := json.NewDecoder(resp.Body).Decode(&buildInfo); err != nil {
		return "", fmt.Errorf("parsing hydra response: %w", err)
	}

	out, ok := buildInfo.Buildoutputs["out"]
	if !ok {
		for _, v := range buildInfo.Buildoutputs {
			out = v
			break
		}
	}
	if out.Path == "" {
		return "", fmt.Errorf("no outputs in hydra response")
	}

	// Path format: /nix/store/<hash>-<name>-<version>
	rest := strings.TrimPrefix(out.Path, "/nix/store/")
	hash, _, ok := strings.Cut(rest, "-")
	if !ok {
		return "", fmt.Errorf("unexpected store path %q", out.Path)
	}

	return hash, nil
}

func (f *Fetcher) getNARInfo(ctx context.Context, storeHash string) (*NARInfo, error) {
	url := fmt.Sprintf("%s/%s.narinfo", f.config.CacheURL, storeHash)
	f.logger.Printf("fetching narinfo from %s", url)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return parseNARInfo(string(body))
}

func (f *Fetcher) downloadNAR(ctx context.Context, narInfo *NARInfo, destPath string) error {
	url := fmt.Sprintf("%s/%s", f.config.CacheURL, narInfo.URL)
	f.logger.Printf("downloading NAR from %s", url)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("downloading: %w", err)
	}

	return nil
}

func (f *Fetcher) verifyFileHash(filePath, expectedHash string) error {
	fh, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer fh.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, fh); err != nil {
		return fmt.Errorf("computing hash: %w", err)
	}

	actual := toNixBase32(hasher.Sum(nil))
	if actual != expectedHash {
		return fmt.Errorf("%w: expected %s, got %s", client.ErrHashMismatch, expectedHash, actual)
	}

	return nil
}

// extractNAR unpacks a (possibly compressed) NAR archive into destPath.
func (f *Fetcher) extractNAR(narPath, destPath, compression string) error {
	fh, err := os.Open(narPath)
	if err != nil {
		return fmt.Errorf("opening NAR file: %w", err)
	}
	defer fh.Close()

	var r io.Reader = bufio.NewReader(fh)
	switch compression {
	case "xz":
		r, err = xz.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating xz reader: %w", err)
		}
	case "none", "":
	default:
		return fmt.Errorf("unsupported compression: %s", compression)
	}

	if err := os.MkdirAll(destPath, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	nr := nar.NewReader(r)
	for {
		hdr, err := nr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading NAR entry: %w", err)
		}

		targetPath := filepath.Join(destPath, hdr.Path)

		switch hdr.Mode.Type() {
		case os.ModeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
		case os.ModeSymlink:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.LinkTarget, targetPath); err != nil && !os.IsExist(err) {
				return fmt.Errorf("creating symlink: %w", err)
			}
		case 0: // Regular file
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}

			perm := os.FileMode(0644)
			if hdr.Mode&0111 != 0 {
				perm = 0755
			}

			outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
			if err != nil {
				return fmt.Errorf("creating file %s: %w", targetPath, err)
			}

			written, err := io.Copy(outFile, nr)
			outFile.Close()
			if err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
			if written != hdr.Size {
				return fmt.Errorf("size mismatch for %s", targetPath)
			}

		default:
			// Ignore other types
		}
	}

	return nil
}

// DetectPlatform returns the Nix platform string for the current system.
func DetectPlatform(goos, goarch string) (string, error) {
	arch, ok := map[string]string{"amd64": "x86_64", "arm64": "aarch64"}[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return arch + "-linux", nil
	case "darwin":
		return arch + "-darwin", nil
	}
	return "", fmt.Errorf("unsupported operating system: %s", goos)
}
