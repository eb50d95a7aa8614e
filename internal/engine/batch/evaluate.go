package batch

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/logging"
	"github.com/rshade/boxect/internal/scenario"
)

// ErrNoScenarios is returned when Evaluate is given nothing to do.
var ErrNoScenarios = errors.New("no scenarios to evaluate")

// ProgressCallback is invoked after each scenario is evaluated.
type ProgressCallback func(ProgressSnapshot)

// Options configures Evaluate.
type Options struct {
	// Concurrency bounds the number of scenarios evaluated at once.
	// Zero or negative means runtime.NumCPU().
	Concurrency int

	// OnProgress is an optional callback for progress updates. It may be
	// called from several goroutines at once.
	OnProgress ProgressCallback
}

// Outcome is the evaluation of one scenario.
type Outcome struct {
	// Index is the scenario's position in the input.
	Index  int
	Name   string
	Inputs engine.Inputs
	Result engine.Result
	// Err is the validation failure, if any. Result is zero when Err is set.
	Err error
}

// OK reports whether the scenario was computed.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Evaluate computes every scenario and returns one Outcome per scenario in
// input order. Validation failures are recorded on the Outcome and do not
// stop the batch. When ctx is cancelled, no further scenarios are started and
// Evaluate returns the outcomes so far with ctx.Err(); unstarted outcomes
// carry only their Index and Name.
func Evaluate(ctx context.Context, scenarios []scenario.Scenario, opts Options) ([]Outcome, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	log := logging.FromContext(ctx)
	progress := NewProgress(len(scenarios))
	outcomes := make([]Outcome, len(scenarios))
	for i, s := range scenarios {
		outcomes[i] = Outcome{Index: i, Name: s.Name, Inputs: s.Inputs}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range scenarios {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			out := &outcomes[i]
			out.Result, out.Err = engine.Compute(out.Inputs)
			progress.AddProcessed(out.Err != nil)

			if out.Err != nil {
				log.Debug().Ctx(ctx).Str("scenario", out.Name).Err(out.Err).Msg("scenario rejected")
			} else {
				log.Debug().Ctx(ctx).
					Str("scenario", out.Name).
					Str("governing_case", out.Result.Governing.String()).
					Float64("ect", out.Result.ECT).
					Msg("scenario evaluated")
			}

			if opts.OnProgress != nil {
				opts.OnProgress(progress.Snapshot())
			}
			return nil
		})
	}

	err := g.Wait()

	final := progress.Snapshot()
	log.Debug().Ctx(ctx).
		Int("processed", final.Processed).
		Int("failed", final.Failed).
		Bool("complete", final.Complete()).
		Dur("elapsed", final.ElapsedTime).
		Msg("batch finished")

	if err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
