// internal/cli/info.go
package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rosy-lang/rubylink"
)

var infoCmd = &cobra.Command{
	Use:   "info [client[:version]]",
	Short: "Dump the resolved Ruby's RbConfig table",
	Long:  `Resolve a Ruby installation and print its full RbConfig::CONFIG table.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	spec, err := specFromArgs(args)
	if err != nil {
		return err
	}

	resolver, err := rubylink.NewResolver(spec.Client, config)
	if err != nil {
		return err
	}

	inst, err := resolver.Client().Resolve(ctx, spec.Version)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", spec, err)
	}

	rb := rubylink.NewRuby(inst, config.Logger)
	cfg, err := rb.Config(ctx)
	if err != nil {
		return fmt.Errorf("reading rbconfig: %w", err)
	}

	fmt.Printf("Ruby:   %s\n", inst.Version)
	fmt.Printf("Prefix: %s\n\n", inst.Prefix)

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, cfg[k])
	}

	return nil
}
