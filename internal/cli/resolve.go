// internal/cli/resolve.go
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rosy-lang/rubylink"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [client[:version]]",
	Short: "Resolve a Ruby installation and print its linker directives",
	Long: `Resolve a Ruby installation and print its linker directives.

The spec argument takes the same client[:version] form as ROSY_RUBY.

Examples:
  rubylink resolve
  rubylink resolve rvm:2.6.3
  rubylink resolve rbenv --static
  ROSY_RUBY=chruby:2.6 rubylink resolve`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("Ruby:      %s\n", resolved.Ruby.Version)
	fmt.Printf("Client:    %s\n", resolved.Ruby.Client)
	fmt.Printf("Prefix:    %s\n", resolved.Ruby.Prefix)
	fmt.Printf("Link mode: %s\n", resolved.Mode)

	if resolved.Directives == nil {
		fmt.Println("Linking:   skipped")
		return nil
	}

	fmt.Printf("CFLAGS:    %s\n", strings.Join(resolved.CFlags(), " "))
	fmt.Printf("LDFLAGS:   %s\n", strings.Join(resolved.LDFlags(), " "))

	return nil
}
