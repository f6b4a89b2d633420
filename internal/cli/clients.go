// internal/cli/clients.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosy-lang/rubylink/pkg/platform"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List available Ruby version managers",
	Long:  `List the Ruby version managers detected on this system.`,
	RunE:  runClients,
}

func runClients(cmd *cobra.Command, args []string) error {
	plat, err := platform.Detect()
	if err != nil {
		return fmt.Errorf("detecting platform: %w", err)
	}

	fmt.Printf("Platform: %s/%s\n\n", plat.OS, plat.Arch)
	fmt.Printf("Available clients:\n")
	for _, c := range plat.Available {
		marker := " "
		if c == plat.Preferred {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, c)
	}

	if plat.Preferred != "" {
		fmt.Printf("\n* = preferred by auto mode\n")
	}

	return nil
}
