// Package scenario reads named ECT input sets from YAML, JSON and XLSX
// documents and watches scenario files for changes.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/boxect/internal/engine"
)

// SupportedVersions is the semver range of scenario documents this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// CurrentVersion is written into documents this build creates.
const CurrentVersion = "1.0.0"

// Format is the encoding of a scenario document.
type Format string

// Document formats, chosen by file extension.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Sentinel errors for document problems.
var (
	ErrUnsupportedFormat  = errors.New("unsupported scenario format")
	ErrMissingVersion     = errors.New("scenario document has no version")
	ErrUnsupportedVersion = errors.New("unsupported scenario document version")
	ErrNoScenarios        = errors.New("scenario document has no scenarios")
	ErrEmptyName          = errors.New("scenario name is empty")
	ErrDuplicateName      = errors.New("duplicate scenario name")
	ErrUnknownField       = errors.New("unknown input field")
	ErrMissingField       = errors.New("missing input fields (set use_builtin_defaults to fill them)")
	ErrNotFound           = errors.New("scenario not found")
)

// Scenario is one named set of calculator inputs.
type Scenario struct {
	Name   string        `json:"name"   yaml:"name"`
	Inputs engine.Inputs `json:"inputs" yaml:"inputs"`
}

// Document is a parsed scenario file. Every scenario's Inputs already has
// the document defaults applied.
type Document struct {
	Version            string        `json:"version"              yaml:"version"`
	UseBuiltinDefaults bool          `json:"use_builtin_defaults" yaml:"use_builtin_defaults"`
	Defaults           engine.Inputs `json:"defaults"             yaml:"defaults"`
	Scenarios          []Scenario    `json:"scenarios"            yaml:"scenarios"`
}

// Lookup returns the scenario with the given name.
func (d *Document) Lookup(name string) (Scenario, error) {
	for _, s := range d.Scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q (have: %s)", ErrNotFound, name, strings.Join(d.Names(), ", "))
}

// Names returns the scenario names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Scenarios))
	for i, s := range d.Scenarios {
		names[i] = s.Name
	}
	return names
}

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s (use .yaml, .yml, .json or .xlsx)", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads and parses the scenario document at path.
func LoadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a scenario document.
//
// Defaults start from engine.DefaultInputs when use_builtin_defaults is set and
// from empty inputs otherwise, so a document that does not opt in must name
// every input, in its defaults or in the scenario itself; a scenario that
// leaves any input unnamed fails with ErrMissingField. Each scenario's inputs
// are decoded on top of a copy of the defaults. Input keys are checked
// against the known field names.
func Parse(data []byte, format Format) (*Document, error) {
	var (
		raw rawDocument
		err error
	)
	switch format {
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatXLSX:
		return ReadWorkbook(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if err = checkVersion(raw.version); err != nil {
		return nil, err
	}

	doc := &Document{Version: raw.version, UseBuiltinDefaults: raw.builtin}
	if raw.builtin {
		doc.Defaults = engine.DefaultInputs()
	}
	defaultKeys, err := raw.defaults(&doc.Defaults)
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}

	if len(raw.scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	supplied := make([][]string, len(raw.scenarios))
	for i, rs := range raw.scenarios {
		s := Scenario{Name: strings.TrimSpace(rs.name), Inputs: doc.Defaults}
		keys, inputsErr := rs.inputs(&s.Inputs)
		if inputsErr != nil {
			return nil, fmt.Errorf("scenario %d (%q): %w", i+1, s.Name, inputsErr)
		}
		supplied[i] = append(slices.Clone(defaultKeys), keys...)
		doc.Scenarios = append(doc.Scenarios, s)
	}
	if err = checkNames(doc.Scenarios); err != nil {
		return nil, err
	}
	if !raw.builtin {
		for i, s := range doc.Scenarios {
			if missing := missingFields(supplied[i]); len(missing) > 0 {
				return nil, fmt.Errorf("scenario %d (%q): %w: %s",
					i+1, s.Name, ErrMissingField, strings.Join(missing, ", "))
			}
		}
	}
	return doc, nil
}

// Marshal encodes doc as YAML or JSON.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func checkVersion(v string) error {
	if strings.TrimSpace(v) == "" {
		return ErrMissingVersion
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrUnsupportedVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

func checkNames(scenarios []Scenario) error {
	seen := make(map[string]int, len(scenarios))
	for i, s := range scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d: %w", i+1, ErrEmptyName)
		}
		if first, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w %q (scenarios %d and %d)", ErrDuplicateName, s.Name, first+1, i+1)
		}
		seen[s.Name] = i
	}
	return nil
}

// missingFields returns the input fields, in form order, that are not in supplied.
func missingFields(supplied []string) []string {
	var missing []string
	for _, field := range engine.InputFields() {
		if !slices.Contains(supplied, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// checkFields rejects keys that are not input field names.
func checkFields(keys []string) error {
	known := engine.InputFields()
	for _, k := range keys {
		if !slices.Contains(known, k) {
			return fmt.Errorf("%w %q", ErrUnknownField, k)
		}
	}
	return nil
}
