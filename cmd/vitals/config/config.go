// Package configcmder provides the config command for managing persistent
// vitals configuration stored in the .vitals/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent vitals configuration.

Configuration is stored as config.toml in the .vitals/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  corpus.dir, corpus.watch,
  api.listen,
  summarizer.provider, summarizer.model, summarizer.base_url,
  summarizer.deadline_seconds,
  retrieval.global_cap, retrieval.category_cap

Use subcommands to get, set, or list configuration values:
  vitals config set <key> <value>    Set a configuration value
  vitals config get <key>            Get a configuration value
  vitals config list                 List all configuration values

Examples:
  vitals config set summarizer.provider anthropic
  vitals config set corpus.dir ~/health-exports
  vitals config get api.listen
  vitals config list`

const configShortDesc string = "Manage persistent vitals configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
