package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/boxect/internal/engine"
)

// ShallowMergeYAML applies a project config file on top of target. Every
// top-level section present in the file replaces the whole section in
// target; absent sections and unknown keys are left alone. The defaults
// section is the exception: it starts from the built-in inputs, so a
// project preset only lists the fields it changes.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Decode into a scratch copy so a bad section leaves target untouched.
	merged := *target
	for key, node := range sections {
		if err = decodeSection(&merged, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	*target = merged
	return nil
}

func decodeSection(cfg *Config, key string, node *yaml.Node) error {
	switch key {
	case "output":
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		cfg.Output = v
	case "logging":
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		cfg.Logging = v
	case "defaults":
		v := engine.DefaultInputs()
		if err := node.Decode(&v); err != nil {
			return err
		}
		cfg.Defaults = v
	case "batch":
		var v BatchConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		cfg.Batch = v
	}
	return nil
}
