package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/boxect/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Long: `Prints the effective value of a dotted configuration key, after the project
overlay and environment overrides are applied.`,
		Example: `  boxect config get output.default_format
  boxect config get defaults.flute_type`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one configuration value",
		Long: `Stores a value at a dotted key in the global configuration file. The file is
only written when the resulting configuration is valid.`,
		Example: `  boxect config set output.default_format json
  boxect config set defaults.weight_lb 14.5
  boxect config set batch.concurrency 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewFromFile()
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("not saved: %w", err)
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			logger.Debug().Ctx(cmd.Context()).Str("key", args[0]).Str("file", cfg.ConfigPath()).Msg("config updated")
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(config.NewFromFile().ConfigPath())
			if dir := config.GetResolvedProjectDir(); dir != "" {
				cmd.Printf("project: %s\n", dir)
			}
			return nil
		},
	}
}
