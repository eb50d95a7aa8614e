package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/boxect/internal/config"
	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/scenario"
)

// inputFlag binds one command-line flag to one engine input field.
type inputFlag struct {
	flag  string
	field string
}

// inputFlags lists every input flag in form order.
//
//nolint:gochecknoglobals // Read-only flag table.
var inputFlags = []inputFlag{
	{"length", engine.FieldLength},
	{"width", engine.FieldWidth},
	{"weight", engine.FieldWeight},
	{"flute", engine.FieldFluteType},
	{"layers", engine.FieldLayers},
	{"per-layer", engine.FieldPerLayer},
	{"storage-stack", engine.FieldStorageStack},
	{"transit-stack", engine.FieldTransitStack},
	{"pallet-weight", engine.FieldPalletWeight},
	{"rh-storage", engine.FieldRHStorage},
	{"rh-transit", engine.FieldRHTransit},
	{"dwell-storage", engine.FieldDwellStorage},
	{"dwell-transit", engine.FieldDwellTransit},
	{"stacking", engine.FieldStackingType},
	{"overhang", engine.FieldOverhang},
	{"gapped", engine.FieldGappedPallet},
	{"misalignment", engine.FieldMisalignment},
}

// inputParams holds the raw input flags plus the optional scenario source.
type inputParams struct {
	values       map[string]*string
	scenarioFile string
	scenarioName string
}

// addInputFlags registers one string flag per input and the --scenario/--name pair.
// Values are parsed at run time so that unset flags fall back to the
// configured defaults or the scenario.
func addInputFlags(cmd *cobra.Command, p *inputParams) {
	p.values = make(map[string]*string, len(inputFlags))
	defaults := engine.DefaultInputs()
	for _, f := range inputFlags {
		v := new(string)
		p.values[f.flag] = v
		cmd.Flags().StringVar(v, f.flag, "", flagUsage(f.field, defaults))
	}
	cmd.Flags().StringVar(&p.scenarioFile, "scenario", "", "load inputs from a scenario file (yaml, json or xlsx)")
	cmd.Flags().StringVar(&p.scenarioName, "name", "", "scenario to load from --scenario (default: the only or first one)")
}

func flagUsage(field string, defaults engine.Inputs) string {
	usage := engine.FieldLabel(field)
	if unit := engine.FieldUnit(field); unit != "" {
		usage += " in " + unit
	}
	if opts := engine.Options(field); opts != nil {
		usage += " (" + strings.Join(opts, ", ") + ")"
	}
	def, _ := defaults.Get(field)
	return fmt.Sprintf("%s [built-in default %s]", usage, def)
}

// resolveInputs builds the inputs for a single calculation: the configured
// defaults, replaced by the scenario when --scenario is given, with every
// explicitly set flag applied on top. It returns the scenario name, if any.
func resolveInputs(cmd *cobra.Command, p *inputParams) (engine.Inputs, string, error) {
	inputs := config.GetGlobalConfig().Defaults
	name := ""

	if p.scenarioFile != "" {
		doc, err := scenario.LoadFile(p.scenarioFile)
		if err != nil {
			return engine.Inputs{}, "", err
		}
		s := doc.Scenarios[0]
		if p.scenarioName != "" {
			if s, err = doc.Lookup(p.scenarioName); err != nil {
				return engine.Inputs{}, "", err
			}
		}
		inputs, name = s.Inputs, s.Name
	} else if p.scenarioName != "" {
		return engine.Inputs{}, "", errors.New("--name requires --scenario")
	}

	for _, f := range inputFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		if err := inputs.Set(f.field, *p.values[f.flag]); err != nil {
			return engine.Inputs{}, "", &inputError{err: fmt.Errorf("--%s: %w", f.flag, err)}
		}
	}
	return inputs, name, nil
}

// flagForField returns the flag name bound to an input field.
func flagForField(field string) string {
	for _, f := range inputFlags {
		if f.field == field {
			return f.flag
		}
	}
	return field
}

// inputError lists every rejected input with the flag that sets it.
type inputError struct {
	err error
}

func (e *inputError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid inputs:")
	for _, part := range unjoin(e.err) {
		sb.WriteString("\n  ")
		var fe *engine.FieldError
		if errors.As(part, &fe) {
			fmt.Fprintf(&sb, "--%s: ", flagForField(fe.Field))
		}
		sb.WriteString(part.Error())
	}
	return sb.String()
}

func (e *inputError) Unwrap() error {
	return e.err
}

// Process exit codes.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInvalidInputs = 2
)

// ExitCode maps a command error to the process exit code: ExitInvalidInputs
// when the calculation inputs were rejected, ExitFailure for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ie *inputError
	if errors.As(err, &ie) {
		return ExitInvalidInputs
	}
	return ExitFailure
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
