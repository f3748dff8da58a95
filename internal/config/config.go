package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Figure styling applied to every summary
	FontSize float64 `mapstructure:"font_size" yaml:"font_size"`
	Palette  string  `mapstructure:"palette" yaml:"palette"`
	DPI      int     `mapstructure:"dpi" yaml:"dpi"`
	// Figure size in inches; 0 keeps each summary type's own size
	FigWidth  float64 `mapstructure:"fig_width" yaml:"fig_width"`
	FigHeight float64 `mapstructure:"fig_height" yaml:"fig_height"`

	// Output
	TableFormat  string `mapstructure:"table_format" yaml:"table_format"`
	FigureFormat string `mapstructure:"figure_format" yaml:"figure_format"`
	ReportsDir   string `mapstructure:"reports_dir" yaml:"reports_dir"`

	// Loading
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Per-kind defaults
	MaxLevels  int `mapstructure:"max_levels" yaml:"max_levels"`
	TopNgrams  int `mapstructure:"top_ngrams" yaml:"top_ngrams"`
	TopEntries int `mapstructure:"top_entries" yaml:"top_entries"`

	// Bucket count range for the automatic time series frequency
	AutoFreqMinBuckets int `mapstructure:"auto_freq_min_buckets" yaml:"auto_freq_min_buckets"`
	AutoFreqMaxBuckets int `mapstructure:"auto_freq_max_buckets" yaml:"auto_freq_max_buckets"`

	// Serve
	ServeAddr string `mapstructure:"serve_addr" yaml:"serve_addr"`
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"font_size", "palette", "dpi", "fig_width", "fig_height", "table_format", "figure_format",
	"reports_dir", "max_rows", "delimiter", "max_levels", "top_ngrams", "top_entries",
	"auto_freq_min_buckets", "auto_freq_max_buckets", "serve_addr",
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".edaloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edaloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDALOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("font_size", 15.0)
	v.SetDefault("palette", "tab10")
	v.SetDefault("dpi", 96)
	v.SetDefault("fig_width", 0.0)
	v.SetDefault("fig_height", 0.0)
	v.SetDefault("table_format", "text")
	v.SetDefault("figure_format", "png")
	v.SetDefault("max_rows", 0)
	v.SetDefault("delimiter", "")
	v.SetDefault("max_levels", 30)
	v.SetDefault("top_ngrams", 10)
	v.SetDefault("top_entries", 10)
	v.SetDefault("auto_freq_min_buckets", 10)
	v.SetDefault("auto_freq_max_buckets", 400)
	v.SetDefault("serve_addr", ":8080")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve reports_dir default: ~/.edaloom/reports
	if c.ReportsDir == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		c.ReportsDir = filepath.Join(dir, "reports")
	}
	return &c, nil
}

// Set assigns a configuration key from its string form.
func (c *Global) Set(key, value string) error {
	v := viper.New()
	v.Set(key, value)
	switch key {
	case "font_size":
		c.FontSize = v.GetFloat64(key)
	case "palette":
		c.Palette = value
	case "dpi":
		c.DPI = v.GetInt(key)
	case "fig_width":
		c.FigWidth = v.GetFloat64(key)
	case "fig_height":
		c.FigHeight = v.GetFloat64(key)
	case "table_format":
		c.TableFormat = value
	case "figure_format":
		c.FigureFormat = value
	case "reports_dir":
		c.ReportsDir = value
	case "max_rows":
		c.MaxRows = v.GetInt(key)
	case "delimiter":
		c.Delimiter = value
	case "max_levels":
		c.MaxLevels = v.GetInt(key)
	case "top_ngrams":
		c.TopNgrams = v.GetInt(key)
	case "top_entries":
		c.TopEntries = v.GetInt(key)
	case "auto_freq_min_buckets":
		c.AutoFreqMinBuckets = v.GetInt(key)
	case "auto_freq_max_buckets":
		c.AutoFreqMaxBuckets = v.GetInt(key)
	case "serve_addr":
		c.ServeAddr = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
