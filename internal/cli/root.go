package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the boxect CLI.
// It loads .env and configuration, wires up logging and tracing, and adds
// the calc, batch, report, tables, watch and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		started    time.Time
		configPath string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:     "boxect",
		Short:   "Corrugated box ECT calculator",
		Long:    "boxect: Recommend the minimum Edge Crush Test value for a Regular Slotted Container",
		Version: ver,
		Example: rootCmdExample,
		// Input errors are not usage errors.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			started = time.Now()

			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			if envErr := config.LoadDotEnv(cwd); envErr != nil {
				cmd.PrintErrf("Warning: %v\n", envErr)
			}

			config.SetConfigFile(configPath)
			resolved := config.ResolveProjectDir(cmd.Context(), projectDir, cwd)
			config.SetResolvedProjectDir(resolved)
			config.InitGlobalConfigWithProject(cmd.Context(), resolved)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult, started)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.boxect/config.yaml)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding .boxect/config.yaml (default: search upward from the working directory)")

	cmd.AddCommand(
		NewCalcCmd(), NewBatchCmd(), NewReportCmd(), NewTablesCmd(), NewWatchCmd(),
		newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Recommend an ECT for the default box
  boxect calc

  # Heavier package, three pallets high in the warehouse
  boxect calc --weight 18.5 --storage-stack 3

  # Edit inputs in an interactive form
  boxect calc --interactive

  # Evaluate every scenario in a file, most demanding first
  boxect batch scenarios.yaml --sort ect:desc

  # Write a PDF report for one scenario
  boxect report --scenario scenarios.yaml --name shipper-12 --out shipper-12.pdf

  # Show the lookup tables
  boxect tables

  # Set a default output format
  boxect config set output.default_format json`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigGetCmd(), NewConfigSetCmd(),
		NewConfigValidateCmd(), NewConfigPathCmd(),
	)
	return cmd
}
