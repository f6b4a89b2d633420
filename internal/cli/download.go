// internal/cli/download.go
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rosy-lang/rubylink/pkg/nixcache"
	"github.com/rosy-lang/rubylink/pkg/srcbuild"
)

var downloadCmd = &cobra.Command{
	Use:   "download [version]",
	Short: "Fetch and build a Ruby into the cache",
	Long: `Fetch and build an exact Ruby version into the cache directory,
without resolving against any version manager first.

Examples:
  rubylink download 2.6.3
  rubylink download 2.6.3 --prebuilt`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	version := args[0]

	if config.DownloadPrebuilt {
		plat, err := nixcache.DetectPlatform(runtime.GOOS, runtime.GOARCH)
		if err != nil {
			return err
		}

		fetcher := nixcache.NewFetcher(&nixcache.Config{
			CachePath: config.CachePath,
			Timeout:   config.Timeout,
			Debug:     config.Debug,
			Logger:    config.Logger,
		})

		inst, err := fetcher.Install(ctx, version, plat)
		if err != nil {
			return fmt.Errorf("fetching ruby %s: %w", version, err)
		}

		fmt.Printf("✓ Fetched ruby %s to %s\n", inst.Version, inst.Prefix)
		return nil
	}

	builder := srcbuild.NewBuilder(&srcbuild.Config{
		CachePath: config.CachePath,
		Timeout:   config.Timeout,
		Debug:     config.Debug,
		Logger:    config.Logger,
	})

	inst, err := builder.Install(ctx, version)
	if err != nil {
		return fmt.Errorf("building ruby %s: %w", version, err)
	}

	fmt.Printf("✓ Built ruby %s to %s\n", inst.Version, inst.Prefix)
	return nil
}
