package cmd

import (
	"github.com/spf13/cobra"
)

var configAs string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after the config file and command-line flags
have been applied. The output can be saved and passed back with --config.

Examples:
  smallos config > smallos.toml
  smallos --config smallos.toml --no-color config --as yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cfg.Encode(cmd.OutOrStdout(), "."+configAs)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configAs, "as", "toml", "output syntax: toml or yaml")
}
