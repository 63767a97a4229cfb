package sqlsanitize

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// defaultCapacity is the cache capacity spec.md names as the default.
const defaultCapacity = 1000

var errNonPositiveCapacity = errors.New("capacity must be positive")

// Config holds the process-scope knobs for a Cache. It decodes the same
// way the teacher's beyla.Config does: a YAML document overlaid by
// environment variables read through caarlos0/env.
type Config struct {
	Capacity int `yaml:"capacity" env:"SQLSANITIZE_CACHE_CAPACITY"`
}

// DefaultConfig returns the spec-mandated defaults.
func DefaultConfig() Config {
	return Config{Capacity: defaultCapacity}
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return errNonPositiveCapacity
	}
	return nil
}

// LoadConfig reads path (if non-empty) as YAML into a Config seeded with
// DefaultConfig, then overlays any SQLSANITIZE_* environment variables.
// An empty path skips the file and parses only the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading sqlsanitize config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing sqlsanitize config %q: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing sqlsanitize environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid sqlsanitize config: %w", err)
	}

	return cfg, nil
}
