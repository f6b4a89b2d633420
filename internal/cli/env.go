// internal/cli/env.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rosy-lang/rubylink"
	"github.com/rosy-lang/rubylink/pkg/linker"
)

var envCmd = &cobra.Command{
	Use:   "env [client[:version]]",
	Short: "Print cgo environment assignments for the resolved Ruby",
	Long: `Print cgo environment assignments for the resolved Ruby.

Intended for build scripts:
  eval $(rubylink env rvm:2.6.3 | sed 's/^/export /')`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	spec, err := specFromArgs(args)
	if err != nil {
		return err
	}

	resolver, err := rubylink.NewResolver(spec.Client, config)
	if err != nil {
		return err
	}

	resolved, err := resolver.Resolve(ctx, spec.Version)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", spec, err)
	}

	return linker.WriteEnv(os.Stdout, resolved.CFlags(), resolved.LDFlags())
}
