// Package cmd provides the quotectl commands. They run the same pricing and
// link code as the API so operators can check a quote from a shell.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/minnmarket/storefront-backend/pkg/config"
)

// Execute runs the CLI against the process environment.
func Execute() error {
	return NewRootCmd(config.Load).Execute()
}

// NewRootCmd builds the command tree. load supplies the configuration and is
// called once before any subcommand runs.
func NewRootCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		envFile string
		cfg     *config.Config
	)

	root := &cobra.Command{
		Use:   "quotectl",
		Short: "Price calculator and operator link tools",
		Long: `quotectl prices calculator input and builds operator links with the
same rules the storefront API uses.

Examples:
  quotectl quote --price 899 --category footwear --title "Nike Dunk"
  quotectl link --type order --name Ivan --phone +79990000000
  quotectl config`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("loading %s: %w", envFile, err)
				}
			} else {
				_ = godotenv.Load()
			}
			loaded, err := load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")

	current := func() *config.Config { return cfg }
	root.AddCommand(newQuoteCmd(current))
	root.AddCommand(newLinkCmd(current))
	root.AddCommand(newConfigCmd(current))
	return root
}
