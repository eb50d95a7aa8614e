package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/scenario"
)

func namedScenarios(n int) []scenario.Scenario {
	out := make([]scenario.Scenario, n)
	for i := range out {
		in := engine.DefaultInputs()
		in.Weight = float64(10 + i)
		out[i] = scenario.Scenario{Name: fmt.Sprintf("s%02d", i), Inputs: in}
	}
	return out
}

func TestEvaluate_PreservesOrder(t *testing.T) {
	scenarios := namedScenarios(25)

	outcomes, err := Evaluate(context.Background(), scenarios, Options{Concurrency: 4})
	require.NoError(t, err)
	require.Len(t, outcomes, len(scenarios))

	for i, o := range outcomes {
		assert.Equal(t, i, o.Index)
		assert.Equal(t, scenarios[i].Name, o.Name)
		require.True(t, o.OK(), o.Name)

		want, wantErr := engine.Compute(scenarios[i].Inputs)
		require.NoError(t, wantErr)
		assert.Equal(t, want, o.Result)
	}
}

func TestEvaluate_FailureIsNotFatal(t *testing.T) {
	scenarios := namedScenarios(3)
	scenarios[1].Inputs.Flute = "E"

	outcomes, err := Evaluate(context.Background(), scenarios, Options{})
	require.NoError(t, err)

	assert.True(t, outcomes[0].OK())
	assert.False(t, outcomes[1].OK())
	require.ErrorIs(t, outcomes[1].Err, engine.ErrUnknownOption)
	assert.Equal(t, engine.Result{}, outcomes[1].Result)
	assert.True(t, outcomes[2].OK())
}

func TestEvaluate_Empty(t *testing.T) {
	_, err := Evaluate(context.Background(), nil, Options{})
	require.ErrorIs(t, err, ErrNoScenarios)
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := Evaluate(ctx, namedScenarios(10), Options{Concurrency: 1})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, outcomes, 10)
	for _, o := range outcomes {
		assert.Equal(t, engine.Result{}, o.Result)
	}
}

func TestEvaluate_ProgressCallback(t *testing.T) {
	var (
		calls atomic.Int32
		mu    sync.Mutex
		last  ProgressSnapshot
	)
	scenarios := namedScenarios(8)
	scenarios[3].Inputs.Layers = 0

	_, err := Evaluate(context.Background(), scenarios, Options{
		Concurrency: 3,
		OnProgress: func(s ProgressSnapshot) {
			calls.Add(1)
			mu.Lock()
			defer mu.Unlock()
			if s.Processed > last.Processed {
				last = s
			}
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int32(8), calls.Load())
	assert.Equal(t, 8, last.Total)
	assert.Equal(t, 8, last.Processed)
	assert.Equal(t, 1, last.Failed)
	assert.InDelta(t, 100.0, last.PercentComplete, 1e-9)
}

func TestSummarize(t *testing.T) {
	tall := engine.DefaultInputs()
	tall.StorageStack = 5
	bad := engine.DefaultInputs()
	bad.Overhang = "9in."

	scenarios := []scenario.Scenario{
		{Name: "reference", Inputs: engine.DefaultInputs()},
		{Name: "tall", Inputs: tall},
		{Name: "broken", Inputs: bad},
	}
	outcomes, err := Evaluate(context.Background(), scenarios, Options{Concurrency: 2})
	require.NoError(t, err)

	s := Summarize(outcomes)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.OK)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.StorageGoverned)
	assert.Equal(t, 1, s.TransitGoverned)
	assert.Equal(t, "tall", s.MaxECTScenario)
	assert.Equal(t, outcomes[1].Result.ECT, s.MaxECT)
}

func TestSummarize_NothingComputed(t *testing.T) {
	s := Summarize([]Outcome{{Name: "x", Err: engine.ErrUnknownOption}})
	assert.Equal(t, 1, s.Failed)
	assert.Zero(t, s.MaxECT)
	assert.Empty(t, s.MaxECTScenario)
}

func TestProgress(t *testing.T) {
	p := NewProgress(4)
	start := p.Snapshot()
	assert.Zero(t, start.PercentComplete)
	assert.False(t, start.Complete())

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.AddProcessed(i == 0)
		}()
	}
	wg.Wait()

	snap := p.Snapshot()
	assert.True(t, snap.Complete())
	assert.Equal(t, 4, snap.Processed)
	assert.Equal(t, 1, snap.Failed)
	assert.InDelta(t, 100.0, snap.PercentComplete, 1e-9)
	assert.False(t, snap.LastUpdateTime.Before(snap.StartTime))
	assert.GreaterOrEqual(t, p.Snapshot().ElapsedTime, snap.ElapsedTime)
}

func TestProgress_ZeroTotal(t *testing.T) {
	snap := NewProgress(0).Snapshot()
	assert.Zero(t, snap.PercentComplete)
	assert.True(t, snap.Complete())
}
