// pkg/srcbuild/builder.go
package srcbuild

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Masterminds/semver"
	"github.com/rosy-lang/rubylink/pkg/client"
	"github.com/rosy-lang/rubylink/pkg/ruby"
)

// Config configures the source builder
type Config struct {
	// MirrorURL is the release tarball mirror
	MirrorURL string

	// CachePath is where archives, sources, and installations live
	CachePath string

	// Jobs is passed to make -j (0 = number of CPUs)
	Jobs int

	// Timeout for network operations
	Timeout time.Duration

	// Debug enables debug logging
	Debug bool

	// Logger for custom logging
	Logger *log.Logger
}

// Builder downloads a Ruby release tarball and builds it into the cache.
// Resulting installations live under <cache>/rubies/<version> and are
// resolved like any locally managed Ruby afterwards.
type Builder struct {
	client *Client
	config *Config
	logger *log.Logger
}

// NewBuilder creates a source builder
func NewBuilder(cfg *Config) *Builder {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.MirrorURL == "" {
		cfg.MirrorURL = DefaultMirrorURL
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
			logger = log.New(os.Stdout, "[SRCBUILD] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Builder{
		client: NewClientWithTimeout(cfg.Timeout),
		config: cfg,
		logger: logger,
	}
}

// InstallDir returns where a finished build of the given version lives.
func (b *Builder) InstallDir(version string) string {
	return filepath.Join(b.config.CachePath, rubiesSubdir, version)
}

// Installed returns the cached installation for a version, if present.
func (b *Builder) Installed(version string) (*ruby.Install, bool) {
	prefix := b.InstallDir(version)
	exe := ruby.ExePath(prefix)
	if _, err := os.Stat(exe); err != nil {
		return nil, false
	}
	return &ruby.Install{Client: "srcbuild", Prefix: prefix, Exe: exe, Version: version}, true
}

// Install downloads, builds, and installs the exact Ruby version into the
// cache, returning the finished installation. Already-built versions are
// returned without rebuilding.
func (b *Builder) Install(ctx context.Context, version string) (*ruby.Install, error) {
	if inst, ok := b.Installed(version); ok {
		b.logger.Printf("using cached build: %s", inst.Prefix)
		return inst, nil
	}

	// 1. Download the release tarball
	url, err := b.TarballURL(version)
	if err != nil {
		return nil, err
	}
	archivePath := filepath.Join(b.config.CachePath, archivesSubdir,
		fmt.Sprintf("ruby-%s.tar.xz", version))

	b.logger.Printf("downloading %s", url)
	if err := b.download(ctx, url, archivePath); err != nil {
		return nil, fmt.Errorf("downloading ruby %s: %w (%v)", version, client.ErrRubyNotFound, err)
	}

	// 2. Extract the source tree
	srcRoot := filepath.Join(b.config.CachePath, srcSubdir)
	b.logger.Printf("extracting to %s", srcRoot)
	if err := extractTarball(archivePath, srcRoot); err != nil {
		return nil, fmt.Errorf("extracting ruby %s: %w", version, err)
	}
	srcDir := filepath.Join(srcRoot, fmt.Sprintf("ruby-%s", version))

	// 3. Configure, make, make install
	prefix := b.InstallDir(version)
	if err := b.build(ctx, srcDir, prefix); err != nil {
		return nil, fmt.Errorf("building ruby %s: %w", version, err)
	}

	os.Remove(archivePath)

	inst, ok := b.Installed(version)
	if !ok {
		return nil, fmt.Errorf("build of ruby %s produced no executable: %w", version, client.ErrRubyNotFound)
	}

	b.logger.Printf("installed ruby %s to %s", version, prefix)
	return inst, nil
}

// TarballURL returns the mirror URL for a release,
// e.g. <mirror>/2.6/ruby-2.6.3.tar.xz
func (b *Builder) TarballURL(version string) (string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("invalid ruby version %q: %w", version, err)
	}
	return fmt.Sprintf("%s/%d.%d/ruby-%s.tar.xz",
		b.config.MirrorURL, v.Major(), v.Minor(), version), nil
}

func (b *Builder) download(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return b.client.Download(ctx, url, f)
}

func (b *Builder) build(ctx context.Context, srcDir, prefix string) error {
	jobs := b.config.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	steps := [][]string{
		{"./configure", "--prefix=" + prefix, "--disable-install-doc"},
		{"make", fmt.Sprintf("-j%d", jobs)},
		{"make", "install"},
	}

	for _, step := range steps {
		b.logger.Printf("running %v in %s", step, srcDir)

		cmd := exec.CommandContext(ctx, step[0], step[1:]...)
		cmd.Dir = srcDir
		cmd.Env = os.Environ()

		output, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("%s failed: %w\n%s", step[0], err, output)
		}
	}

	return nil
}
