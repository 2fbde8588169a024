package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/meshline/pkg/mesh"
)

// Config holds conversion and batch settings.
type Config struct {
	QuantizeDigits int     `yaml:"quantize_digits" validate:"min=0,max=15"`
	AngleThreshold float64 `yaml:"angle_threshold" validate:"gt=0,lt=2"`
	Workers        int     `yaml:"workers" validate:"min=1,max=256"`
	OutputDir      string  `yaml:"output_dir"`
	Compress       bool    `yaml:"compress"`
	DXF            bool    `yaml:"dxf"`
	MetricsFile    string  `yaml:"metrics_file"`
	LogLevel       string  `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		QuantizeDigits: mesh.DefaultQuantizeDigits,
		AngleThreshold: mesh.DefaultAngleThreshold,
		Workers:        4,
		LogLevel:       "info",
	}
}

// Load reads path on top of the defaults. An empty path yields the defaults.
// Environment overrides are applied afterwards and the result is validated.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg, err := ReadWithEnv(path, lookup)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further overrides first.
func Read(path string) (Config, error) {
	return ReadWithEnv(path, os.LookupEnv)
}

// ReadWithEnv is Read with an explicit environment lookup.
func ReadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MESHLINE_* variables and LOG_LEVEL.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("MESHLINE_QUANTIZE_DIGITS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MESHLINE_QUANTIZE_DIGITS: %w", err)
		}
		c.QuantizeDigits = n
	}
	if v, ok := lookup("MESHLINE_ANGLE_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("MESHLINE_ANGLE_THRESHOLD: %w", err)
		}
		c.AngleThreshold = f
	}
	if v, ok := lookup("MESHLINE_WORKERS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MESHLINE_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v, ok := lookup("MESHLINE_OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := lookup("MESHLINE_METRICS_FILE"); ok {
		c.MetricsFile = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	return formatValidationError(validate.Struct(c))
}

// MeshOptions returns the converter options described by c.
func (c Config) MeshOptions() mesh.Options {
	return mesh.Options{
		QuantizeDigits: c.QuantizeDigits,
		AngleThreshold: c.AngleThreshold,
	}
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, e.Param())
		case "lt":
			return fmt.Errorf("%s: must be less than %s", field, e.Param())
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
