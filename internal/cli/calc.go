package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/logging"
	"github.com/rshade/boxect/internal/scenario"
	"github.com/rshade/boxect/internal/tui"
)

// calcParams holds the flags of the calc command.
type calcParams struct {
	inputs      inputParams
	output      string
	interactive bool
	save        string
}

// calcFormats are the output formats of a single calculation.
//
//nolint:gochecknoglobals // Read-only list.
var calcFormats = []string{
	config.FormatTable, config.FormatJSON, config.FormatNDJSON, config.FormatYAML, config.FormatProm,
}

// NewCalcCmd creates the calc command, which recommends an ECT for one set of inputs.
func NewCalcCmd() *cobra.Command {
	var params calcParams

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Recommend a minimum ECT for one box",
		Long: `Computes the recommended minimum Edge Crush Test value for a Regular Slotted
Container from its size, weight, pallet pattern, storage and transit stacking,
humidity, dwell time and handling conditions.

Inputs start from the configured defaults (config section "defaults"). With
--scenario, they start from a scenario in a file instead. Any input flag that
is set explicitly overrides both.`,
		Example: `  # Default box
  boxect calc

  # Override a few inputs
  boxect calc --weight 18.5 --flute BC --rh-storage 85

  # Start from a scenario, then change the stack height
  boxect calc --scenario scenarios.yaml --name shipper-12 --storage-stack 4

  # Machine-readable output
  boxect calc --output json

  # Tune inputs interactively and keep them as a scenario
  boxect calc --interactive --save shipper-12.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, &params)
		},
	}

	addInputFlags(cmd, &params.inputs)
	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"output format: table, json, ndjson, yaml or prom (default from configuration)")
	cmd.Flags().BoolVarP(&params.interactive, "interactive", "i", false, "edit the inputs in an interactive form")
	cmd.Flags().StringVar(&params.save, "save", "", "write the final inputs to a scenario file (yaml or json)")

	return cmd
}

func runCalc(cmd *cobra.Command, params *calcParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format := outputFormat(params.output)
	if err := validateFormat(format, calcFormats); err != nil {
		return err
	}

	inputs, name, err := resolveInputs(cmd, &params.inputs)
	if err != nil {
		return err
	}

	if params.interactive {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return errors.New("--interactive requires a terminal")
		}
		model, runErr := tui.Run(ctx, inputs, computeInputs)
		if runErr != nil {
			return runErr
		}
		inputs = model.Inputs()
	}

	result, err := computeInputs(ctx, inputs)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("scenario", name).
		Str("governing_case", result.Governing.String()).
		Float64("ect", result.ECT).
		Msg("calculation complete")

	if params.save != "" {
		if err = saveScenario(params.save, name, inputs); err != nil {
			return err
		}
		cmd.Printf("Scenario saved to %s\n", params.save)
	}

	out := calcOutput{Scenario: name, Inputs: inputs, Result: result}
	return renderCalc(cmd.OutOrStdout(), format, out, config.GetOutputPrecision())
}

// computeInputs runs the engine and reports rejected inputs with their flags.
func computeInputs(_ context.Context, inputs engine.Inputs) (engine.Result, error) {
	result, err := engine.Compute(inputs)
	if err != nil {
		return engine.Result{}, &inputError{err: err}
	}
	return result, nil
}

// saveScenario writes inputs as a single-scenario document that names every
// field, so it loads the same way without built-in defaults.
func saveScenario(path, name string, inputs engine.Inputs) error {
	format, err := scenario.FormatFromPath(path)
	if err != nil {
		return err
	}
	if name == "" {
		name = "default"
	}
	doc := &scenario.Document{
		Version:   scenario.CurrentVersion,
		Defaults:  inputs,
		Scenarios: []scenario.Scenario{{Name: name, Inputs: inputs}},
	}
	data, err := scenario.Marshal(doc, format)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// outputFormat returns flagValue, or the configured default when it is empty.
func outputFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.GetDefaultOutputFormat()
}
