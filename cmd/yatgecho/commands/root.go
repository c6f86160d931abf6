// Package commands holds the yatgecho command line.
package commands

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "yatgecho",
	Short: "Example Telegram bot echoing formatted messages",
	Long: `yatgecho polls the Bot API and echoes every message back with its entities.

Configuration comes from a TOML or YAML file given with --config and from
environment variables, which take precedence. BOT_TOKEN is required.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML or YAML config file")
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}
