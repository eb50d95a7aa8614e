// Package config loads, validates and persists boxect configuration:
// the global ~/.boxect/config.yaml, an optional project overlay, .env files
// and BOXECT_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/boxect/internal/engine"
)

// Environment variables read by New.
const (
	EnvHome             = "BOXECT_HOME"
	EnvProjectDir       = "BOXECT_PROJECT_DIR"
	EnvOutputFormat     = "BOXECT_OUTPUT_FORMAT"
	EnvBatchConcurrency = "BOXECT_BATCH_CONCURRENCY"
)

const (
	configFileName = "config.yaml"
	outputTypeFile = "file"

	defaultPrecision = 2
	maxPrecision     = 10
)

// Output formats understood by the calc and batch commands.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
	FormatProm   = "prom"
	FormatXLSX   = "xlsx"
)

// ErrUnknownKey is returned by Get and Set for a key that is not part of the configuration.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the complete boxect configuration.
type Config struct {
	Output   OutputConfig  `yaml:"output"`
	Logging  LoggingConfig `yaml:"logging"`
	Defaults engine.Inputs `yaml:"defaults"`
	Batch    BatchConfig   `yaml:"batch"`

	configPath string
	loadErr    error
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger built for each command.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// BatchConfig controls scenario batch evaluation.
type BatchConfig struct {
	// Concurrency is the number of scenarios evaluated at once; 0 means one per CPU.
	Concurrency int `yaml:"concurrency"`
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     defaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: "console",
		},
		Defaults: engine.DefaultInputs(),
	}
}

// New returns the built-in configuration overlaid with the global config file
// and the environment. A config file that cannot be parsed is remembered and
// reported by Validate; the defaults are used in its place.
func New() *Config {
	cfg := NewFromFile()
	cfg.applyEnv()
	return cfg
}

// NewFromFile is New without the environment overrides. It is what
// "config set" edits, so that environment values are never written back.
func NewFromFile() *Config {
	cfg := Default()

	path := configFileOverride()
	if path == "" {
		dir, err := GetConfigDir()
		if err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}
	cfg.configPath = path

	if path != "" {
		if err := cfg.loadFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			cfg = Default()
			cfg.configPath = path
			cfg.loadErr = err
		}
	}
	return cfg
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if format := os.Getenv(EnvOutputFormat); format != "" {
		c.Output.DefaultFormat = strings.ToLower(format)
	}
	if env := os.Getenv(EnvBatchConcurrency); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			c.Batch.Concurrency = n
		}
	}
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration to its config path, creating the directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no configuration path set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	if c.loadErr != nil {
		return c.loadErr
	}

	var errs []error
	if !slices.Contains(OutputFormats(), c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("output.default_format: unsupported format %q (valid: %s)",
			c.Output.DefaultFormat, strings.Join(OutputFormats(), ", ")))
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		errs = append(errs, fmt.Errorf("output.precision: must be between 0 and %d, got %d",
			maxPrecision, c.Output.Precision))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format: must be json or console, got %q", c.Logging.Format))
	}
	if c.Batch.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("batch.concurrency: must be >= 0, got %d", c.Batch.Concurrency))
	}
	if _, err := engine.Compute(c.Defaults); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}
	return errors.Join(errs...)
}

// OutputFormats lists the formats accepted in output.default_format.
func OutputFormats() []string {
	return []string{FormatTable, FormatJSON, FormatNDJSON, FormatYAML, FormatProm}
}

// EffectiveConcurrency resolves the batch concurrency, substituting one worker per CPU for 0.
func (c *Config) EffectiveConcurrency() int {
	if c.Batch.Concurrency > 0 {
		return c.Batch.Concurrency
	}
	return runtime.NumCPU()
}

// Get returns the value at a dotted key such as "output.default_format" or
// "defaults.flute_type", formatted as YAML scalar text.
func (c *Config) Get(key string) (string, error) {
	tree, err := c.tree()
	if err != nil {
		return "", err
	}
	parent, leaf, err := lookup(tree, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(parent[leaf]), nil
}

// Set parses value as a YAML scalar and stores it at a dotted key.
// The updated configuration is decoded again so type errors surface here.
func (c *Config) Set(key, value string) error {
	tree, err := c.tree()
	if err != nil {
		return err
	}
	parent, leaf, err := lookup(tree, key)
	if err != nil {
		return err
	}

	var scalar any
	if err = yaml.Unmarshal([]byte(value), &scalar); err != nil {
		return fmt.Errorf("parsing value for %s: %w", key, err)
	}
	if _, isMap := parent[leaf].(map[string]any); isMap {
		return fmt.Errorf("%w: %s is a section, not a value", ErrUnknownKey, key)
	}
	parent[leaf] = scalar

	data, err := yaml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	updated := Config{}
	if err = yaml.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	updated.configPath = c.configPath
	*c = updated
	return nil
}

func (c *Config) tree() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var tree map[string]any
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return tree, nil
}

// lookup walks a dotted key through tree and returns the map holding its last segment.
func lookup(tree map[string]any, key string) (map[string]any, string, error) {
	parts := strings.Split(key, ".")
	node := tree
	for i, part := range parts {
		v, ok := node[part]
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if i == len(parts)-1 {
			return node, part, nil
		}
		next, isMap := v.(map[string]any)
		if !isMap {
			return nil, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		node = next
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}
