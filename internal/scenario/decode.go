package scenario

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/rshade/boxect/internal/engine"
)

// overlayFunc decodes one inputs section on top of in and returns the
// field names the section set.
type overlayFunc func(in *engine.Inputs) ([]string, error)

// rawDocument is a decoded document whose input sections have not yet been
// applied, so defaults can be resolved before any scenario.
type rawDocument struct {
	version   string
	builtin   bool
	defaults  overlayFunc
	scenarios []rawScenario
}

type rawScenario struct {
	name   string
	inputs overlayFunc
}

type yamlDocument struct {
	Version            string         `yaml:"version"`
	UseBuiltinDefaults bool           `yaml:"use_builtin_defaults"`
	Defaults           yaml.Node      `yaml:"defaults"`
	Scenarios          []yamlScenario `yaml:"scenarios"`
}

type yamlScenario struct {
	Name   string    `yaml:"name"`
	Inputs yaml.Node `yaml:"inputs"`
}

type jsonDocument struct {
	Version            string          `json:"version"`
	UseBuiltinDefaults bool            `json:"use_builtin_defaults"`
	Defaults           json.RawMessage `json:"defaults"`
	Scenarios          []jsonScenario  `json:"scenarios"`
}

type jsonScenario struct {
	Name   string          `json:"name"`
	Inputs json.RawMessage `json:"inputs"`
}

func decodeYAML(data []byte) (rawDocument, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return rawDocument{}, fmt.Errorf("parsing YAML: %w", err)
	}
	raw := rawDocument{
		version:  doc.Version,
		builtin:  doc.UseBuiltinDefaults,
		defaults: yamlOverlay(doc.Defaults),
	}
	for _, s := range doc.Scenarios {
		raw.scenarios = append(raw.scenarios, rawScenario{name: s.Name, inputs: yamlOverlay(s.Inputs)})
	}
	return raw, nil
}

func yamlOverlay(node yaml.Node) overlayFunc {
	return func(in *engine.Inputs) ([]string, error) {
		if node.Kind == 0 || node.Tag == "!!null" {
			return nil, nil
		}
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: inputs must be a mapping", node.Line)
		}
		keys := make([]string, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			keys = append(keys, node.Content[i].Value)
		}
		if err := checkFields(keys); err != nil {
			return nil, err
		}
		return keys, node.Decode(in)
	}
}

func decodeJSON(data []byte) (rawDocument, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return rawDocument{}, fmt.Errorf("parsing JSON: %w", err)
	}
	raw := rawDocument{
		version:  doc.Version,
		builtin:  doc.UseBuiltinDefaults,
		defaults: jsonOverlay(doc.Defaults),
	}
	for _, s := range doc.Scenarios {
		raw.scenarios = append(raw.scenarios, rawScenario{name: s.Name, inputs: jsonOverlay(s.Inputs)})
	}
	return raw, nil
}

func jsonOverlay(msg json.RawMessage) overlayFunc {
	return func(in *engine.Inputs) ([]string, error) {
		if len(msg) == 0 || string(msg) == "null" {
			return nil, nil
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(msg, &fields); err != nil {
			return nil, fmt.Errorf("inputs must be an object: %w", err)
		}
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		if err := checkFields(keys); err != nil {
			return nil, err
		}
		return keys, json.Unmarshal(msg, in)
	}
}
