package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine/batch"
	"github.com/rshade/boxect/internal/scenario"
)

// NewWatchCmd creates the watch command, which re-evaluates a scenario file on every save.
func NewWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-evaluate a scenario file every time it is saved",
		Long: `Evaluates every scenario in FILE, then waits for the file to change and
prints the results again. A file that fails to load is reported and the
previous results stay on screen. Press Ctrl+C to stop.`,
		Example: `  boxect watch scenarios.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, args[0], debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", scenario.DefaultDebounce, "wait this long after the last write before reloading")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, debounce time.Duration) error {
	doc, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	// An evaluation that has started runs to completion even if Ctrl+C
	// arrives mid-way; the watch loop stops right after it.
	evalCtx := context.WithoutCancel(ctx)
	evaluate := func(doc *scenario.Document) {
		outcomes, evalErr := batch.Evaluate(evalCtx, doc.Scenarios, batch.Options{
			Concurrency: cfg.EffectiveConcurrency(),
		})
		if evalErr != nil {
			cmd.PrintErrf("Error: %v\n", evalErr)
			return
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "\n== %s (%s)\n", path, time.Now().Format(time.TimeOnly))
		if renderErr := renderBatchTable(w, outcomes, batch.Summarize(outcomes), cfg.Output.Precision); renderErr != nil {
			cmd.PrintErrf("Error: %v\n", renderErr)
		}
	}

	evaluate(doc)
	return scenario.Watch(ctx, path, scenario.WatchOptions{
		Debounce: debounce,
		OnError: func(err error) {
			cmd.PrintErrf("Error: %v (keeping previous results)\n", err)
		},
	}, evaluate)
}
