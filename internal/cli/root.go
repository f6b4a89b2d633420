// internal/cli/root.go
package cli

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rosy-lang/rubylink/pkg/client"
)

var (
	cfgFile    string
	clientName string
	static     bool
	download   bool
	prebuilt   bool
	skipLink   bool
	debug      bool
	config     *client.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rubylink",
	Short: "Ruby installation resolver",
	Long: `rubylink - Ruby installation resolver

Locates a Ruby installation through rvm, rbenv, chruby, or the system Ruby
and emits the compiler and linker flags needed to embed its C API.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rubylink/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&clientName, "client", "", "ruby client to use (system, rvm, rbenv, chruby, auto)")
	rootCmd.PersistentFlags().BoolVar(&static, "static", false, "force static linking")
	rootCmd.PersistentFlags().BoolVar(&download, "download", false, "fetch and build a Ruby when none matches")
	rootCmd.PersistentFlags().BoolVar(&prebuilt, "prebuilt", false, "prefer a prebuilt Ruby from the NixOS binary cache")
	rootCmd.PersistentFlags().BoolVar(&skipLink, "skip-linking", false, "resolve paths only, emit no linker directives")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = client.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = client.DefaultConfig()
	}

	// Override config with flags
	if static {
		config.Static = true
	}
	if download {
		config.Download = true
	}
	if prebuilt {
		config.DownloadPrebuilt = true
	}
	if skipLink {
		config.SkipLinking = true
	}
	if debug {
		config.Debug = true
		config.Logger = log.New(os.Stderr, "[RUBYLINK] ", log.LstdFlags)
	}
}

// specFromArgs folds the --client flag, an optional spec argument, and the
// ROSY_* environment into the effective spec. Precedence: flag > argument >
// environment > config default.
func specFromArgs(args []string) (*client.Spec, error) {
	env := client.ReadEnviron()

	if len(args) > 0 {
		env.Ruby = args[0]
		// An argument that names a version beats ROSY_RUBY_VERSION
		if strings.Contains(args[0], ":") {
			env.RubyVersion = ""
		}
	}
	spec, err := env.Apply(config)
	if err != nil {
		return nil, err
	}

	if clientName != "" {
		t := client.Type(clientName)
		if !client.Known(t) {
			return nil, fmt.Errorf("client %q: %w", clientName, client.ErrUnknownClient)
		}
		spec.Client = t
	}

	return spec, nil
}
