// Package config loads listvision settings from a config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/listvision-mcp/internal/detection"
	"github.com/ironsheep/listvision-mcp/internal/vision"
)

// EnvPrefix prefixes every environment override, e.g. LISTVISION_LOG_LEVEL.
const EnvPrefix = "LISTVISION"

// Config holds application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Rows   RowsConfig   `mapstructure:"rows"`
	Vision VisionConfig `mapstructure:"vision"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Journal bool   `mapstructure:"journal"`
}

// RowsConfig holds the list the editor starts with.
type RowsConfig struct {
	Seed        []string `mapstructure:"seed"`
	Placeholder string   `mapstructure:"placeholder"`
}

// VisionConfig holds detection thresholds and backend tuning.
type VisionConfig struct {
	ClassifyMinConfidence float64 `mapstructure:"classify_min_confidence"`
	MinConfidence         float64 `mapstructure:"min_confidence"`
	MaxObservations       int     `mapstructure:"max_observations"`
	PaletteSize           int     `mapstructure:"palette_size"`
	RectangleMinArea      int     `mapstructure:"rectangle_min_area"`
	RectangleTolerance    float64 `mapstructure:"rectangle_tolerance"`
	OCRLanguage           string  `mapstructure:"ocr_language"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.journal", false)
	v.SetDefault("rows.seed", []string{"a", "b", "c", "d", "e", "f", "g", "h"})
	v.SetDefault("rows.placeholder", "new item")
	v.SetDefault("vision.classify_min_confidence", 0.5)
	v.SetDefault("vision.min_confidence", 0.6)
	v.SetDefault("vision.max_observations", 10)
	v.SetDefault("vision.palette_size", 5)
	v.SetDefault("vision.rectangle_min_area", 100)
	v.SetDefault("vision.rectangle_tolerance", 0.9)
	v.SetDefault("vision.ocr_language", "eng")
}

// Default returns the configuration used when no file or env is present.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from path, or from LISTVISION_CONFIG, or from
// ~/.config/listvision/config.{toml,yaml,json}, then applies env overrides.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "listvision"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	for name, value := range map[string]float64{
		"vision.classify_min_confidence": c.Vision.ClassifyMinConfidence,
		"vision.min_confidence":          c.Vision.MinConfidence,
		"vision.rectangle_tolerance":     c.Vision.RectangleTolerance,
	} {
		if value < 0 || value > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %g", name, value))
		}
	}
	for name, value := range map[string]int{
		"vision.max_observations":   c.Vision.MaxObservations,
		"vision.rectangle_min_area": c.Vision.RectangleMinArea,
	} {
		if value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, value))
		}
	}
	if c.Vision.PaletteSize < 1 {
		errs = append(errs, fmt.Errorf("vision.palette_size must be at least 1, got %d", c.Vision.PaletteSize))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Policies builds the per-kind detection policies. Classification keeps
// its own threshold and ordering; only rectangles are capped.
func (c VisionConfig) Policies() map[vision.Kind]vision.Policy {
	policies := vision.DefaultPolicies()
	for kind, p := range policies {
		if kind == vision.KindClassify {
			p.MinConfidence = c.ClassifyMinConfidence
		} else {
			p.MinConfidence = c.MinConfidence
		}
		if kind == vision.KindRectangle {
			p.MaxObservations = c.MaxObservations
		}
		policies[kind] = p
	}
	return policies
}

// BackendOptions builds the options for the built-in detection backends.
func (c VisionConfig) BackendOptions() vision.BackendOptions {
	return vision.BackendOptions{
		PaletteSize: c.PaletteSize,
		Rectangles: detection.RectangleOptions{
			MinArea:   c.RectangleMinArea,
			Tolerance: c.RectangleTolerance,
		},
		OCRLanguage: c.OCRLanguage,
	}
}
