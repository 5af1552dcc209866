package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// L14TABLE_RENDER_WIDTH for render.width.
const EnvPrefix = "L14TABLE"

// Config is the complete configuration for the front ends.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // console or json
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`

	// Rotated JSON log file, written in addition to the console.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

type RenderConfig struct {
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Format     string `mapstructure:"format" yaml:"format"`
	Background string `mapstructure:"background" yaml:"background"`
	FontFile   string `mapstructure:"font_file" yaml:"font_file"`
	BoldFile   string `mapstructure:"bold_font_file" yaml:"bold_font_file"`
}

type LayoutConfig struct {
	// DefaultBorderCollapse applies to tables without a border-collapse
	// declaration.
	DefaultBorderCollapse string `mapstructure:"default_border_collapse" yaml:"default_border_collapse"`
	DebugBorders          bool   `mapstructure:"debug_borders" yaml:"debug_borders"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "l14table")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	// -- Render --
	v.SetDefault("render.width", 800)
	v.SetDefault("render.height", 600)
	v.SetDefault("render.format", "png")
	v.SetDefault("render.background", "white")
	v.SetDefault("render.font_file", "")
	v.SetDefault("render.bold_font_file", "")

	// -- Layout --
	v.SetDefault("layout.default_border_collapse", "separate")
	v.SetDefault("layout.debug_borders", false)
}

// NewViper returns a viper instance with defaults and environment overrides
// set up. path names an optional YAML config file.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the config file at path (optional), environment overrides and
// defaults.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// Validate checks the values the front ends cannot fall back from.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	switch strings.ToLower(c.Layout.DefaultBorderCollapse) {
	case "separate", "collapse":
	default:
		return fmt.Errorf("layout.default_border_collapse: unknown value %q", c.Layout.DefaultBorderCollapse)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format: unknown value %q", c.Logger.Format)
	}
	return nil
}
