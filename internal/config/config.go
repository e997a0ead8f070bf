package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/menta2k/image-resizer/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Resize ResizeConfig `json:"resize"`
	Output OutputConfig `json:"output"`
	Batch  BatchConfig  `json:"batch"`
}

// ResizeConfig holds the transform parameters
type ResizeConfig struct {
	Width            int    `json:"width" envconfig:"WIDTH"`
	Height           int    `json:"height" envconfig:"HEIGHT"`
	Quality          int    `json:"quality" envconfig:"QUALITY"`
	Format           string `json:"format" envconfig:"FORMAT"`
	Mode             string `json:"mode" envconfig:"MODE"`
	PreserveAspect   bool   `json:"preserve_aspect" envconfig:"PRESERVE_ASPECT"`
	PreserveMetadata bool   `json:"preserve_metadata" envconfig:"PRESERVE_METADATA"`
	Lossless         bool   `json:"lossless" envconfig:"LOSSLESS"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Dir           string `json:"dir" envconfig:"OUTPUT_DIR"`
	NamingPattern string `json:"naming_pattern" envconfig:"NAMING_PATTERN"`
}

// BatchConfig holds configuration for batch processing
type BatchConfig struct {
	// Workers bounds the number of concurrent transforms; 0 auto-detects
	Workers int `json:"workers" envconfig:"WORKERS"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Resize: ResizeConfig{
			Width:          800,
			Height:         600,
			Quality:        85,
			Format:         string(types.FormatJPEG),
			Mode:           string(types.ModeFit),
			PreserveAspect: true,
		},
		Output: OutputConfig{
			Dir:           "resized_images",
			NamingPattern: "{name}_resized",
		},
		Batch: BatchConfig{
			Workers: 0,
		},
	}
}

// namingPresets are example naming patterns offered to callers
var namingPresets = map[string]string{
	"Default":    "{name}_resized",
	"With Size":  "{name}_{width}x{height}",
	"Sequential": "img_{index:03d}",
	"Original":   "{original_name}",
	"Custom":     "{name}_{width}x{height}_resized",
}

// NamingPresets returns a copy of the named naming-pattern presets
func NamingPresets() map[string]string {
	presets := make(map[string]string, len(namingPresets))
	for k, v := range namingPresets {
		presets[k] = v
	}
	return presets
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// FromEnv overrides configuration values from IMAGE_RESIZER_* environment
// variables
func (c *Config) FromEnv() error {
	if err := envconfig.Process("image_resizer", &c.Resize); err != nil {
		return err
	}
	if err := envconfig.Process("image_resizer", &c.Output); err != nil {
		return err
	}
	return envconfig.Process("image_resizer", &c.Batch)
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Resize.Width < 1 || c.Resize.Height < 1 {
		return fmt.Errorf("resize.width and resize.height must be positive")
	}

	if c.Resize.Quality < 1 || c.Resize.Quality > 100 {
		return fmt.Errorf("resize.quality must be between 1 and 100")
	}

	if _, ok := types.ParseFormat(c.Resize.Format); !ok {
		return fmt.Errorf("resize.format must be one of jpeg, png, webp")
	}

	if _, ok := types.ParseMode(c.Resize.Mode); !ok {
		return fmt.Errorf("resize.mode must be one of fit, fill, crop, stretch")
	}

	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative")
	}

	if c.Output.NamingPattern == "" {
		return fmt.Errorf("output.naming_pattern cannot be empty")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-resizer", "config.json")
}
