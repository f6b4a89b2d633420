// internal/cli/list.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosy-lang/rubylink"
)

var listCmd = &cobra.Command{
	Use:   "list [client]",
	Short: "List installed Rubies",
	Long:  `List the Ruby installations the selected client knows about, newest first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	spec, err := specFromArgs(args)
	if err != nil {
		return err
	}

	resolver, err := rubylink.NewResolver(spec.Client, config)
	if err != nil {
		return err
	}

	installs, err := resolver.List(ctx)
	if err != nil {
		return fmt.Errorf("listing rubies: %w", err)
	}

	fmt.Printf("Client: %s\n\n", resolver.Client().Name())
	for _, inst := range installs {
		fmt.Printf("  %-12s %s\n", inst.Version, inst.Prefix)
	}

	return nil
}
