package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"accuracy-chart/internal/features/accuracy"
	"accuracy-chart/internal/features/charts"
	"accuracy-chart/internal/infra/fonts"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultOutput     = "classification_accuracy_bar_chart_marathi.png"
	DefaultConfigFile = "config.yaml"

	minWidth  = 200
	minHeight = 150
)

type Config struct {
	Chart    ChartConfig       `mapstructure:"chart"`
	Telegram TelegramConfig    `mapstructure:"telegram"`
	Dataset  *accuracy.Dataset `mapstructure:"dataset"` // nil unless overridden in config.yaml
}

type ChartConfig struct {
	Output     string   `mapstructure:"output"`
	HTMLOutput string   `mapstructure:"html_output"` // empty = no html chart
	Width      int      `mapstructure:"width"`
	Height     int      `mapstructure:"height"`
	FontPaths  []string `mapstructure:"font_paths"`
	FontFamily string   `mapstructure:"font_family"` // fontconfig family; empty = derived from locale script
}

type TelegramConfig struct {
	BotToken       string `mapstructure:"bot_token"`
	ChatID         string `mapstructure:"chat_id"`
	Caption        string `mapstructure:"caption"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds
	MaxRetries     int    `mapstructure:"max_retries"`
}

// RegisterFlags adds the flags LoadConfig understands
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", DefaultConfigFile, "Config file (yaml)")
	fs.StringP("output", "o", DefaultOutput, "PNG output path (env: CHART_OUTPUT)")
	fs.String("html", "", "Also write an interactive HTML chart to this path (env: CHART_HTML_OUTPUT)")
	fs.Int("width", charts.DefaultWidth, "Image width in pixels (env: CHART_WIDTH)")
	fs.Int("height", charts.DefaultHeight, "Image height in pixels (env: CHART_HEIGHT)")
	fs.StringSlice("font", nil, "Font file to try first, repeatable (env: CHART_FONT_PATHS)")
	fs.String("font-family", "", "fontconfig family to fall back to (env: CHART_FONT_FAMILY)")
}

var flagKeys = map[string]string{
	"output":      "chart.output",
	"html":        "chart.html_output",
	"width":       "chart.width",
	"height":      "chart.height",
	"font":        "chart.font_paths",
	"font-family": "chart.font_family",
}

// LoadConfig layers defaults, config.yaml, .env, environment and flags (lowest to highest).
// flags may be nil.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// CHART_FONT_PATHS arrives as one comma separated string
	if raw, ok := v.Get("chart.font_paths").(string); ok {
		cfg.Chart.FontPaths = splitList(raw)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	path := DefaultConfigFile
	explicit := false
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			path = f.Value.String()
			explicit = f.Changed
		}
	}

	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("chart.output", "CHART_OUTPUT")
	v.BindEnv("chart.html_output", "CHART_HTML_OUTPUT")
	v.BindEnv("chart.width", "CHART_WIDTH")
	v.BindEnv("chart.height", "CHART_HEIGHT")
	v.BindEnv("chart.font_paths", "CHART_FONT_PATHS")
	v.BindEnv("chart.font_family", "CHART_FONT_FAMILY")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram.caption", "TELEGRAM_CAPTION")
	v.BindEnv("telegram.request_timeout", "TELEGRAM_REQUEST_TIMEOUT")
	v.BindEnv("telegram.max_retries", "TELEGRAM_MAX_RETRIES")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chart.output", DefaultOutput)
	v.SetDefault("chart.html_output", "")
	v.SetDefault("chart.width", charts.DefaultWidth)
	v.SetDefault("chart.height", charts.DefaultHeight)
	v.SetDefault("chart.font_paths", []string{})
	v.SetDefault("chart.font_family", "")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.caption", "")
	v.SetDefault("telegram.request_timeout", 30)
	v.SetDefault("telegram.max_retries", 3)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Chart.Output) == "" {
		return fmt.Errorf("chart.output must not be empty")
	}
	if c.Chart.Width < minWidth || c.Chart.Height < minHeight {
		return fmt.Errorf("chart size %dx%d is below the %dx%d minimum", c.Chart.Width, c.Chart.Height, minWidth, minHeight)
	}
	if c.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must not be negative")
	}
	return nil
}

// DatasetOrDefault returns the configured dataset, or the built-in Marathi one
func (c *Config) DatasetOrDefault() accuracy.Dataset {
	if c.Dataset != nil && len(c.Dataset.Categories) > 0 {
		return *c.Dataset
	}
	return accuracy.Default()
}

func (c *Config) ChartOptions() charts.Options {
	return charts.Options{Width: c.Chart.Width, Height: c.Chart.Height}
}

// FontCandidates puts user-supplied fonts ahead of the built-in search list
func (c *Config) FontCandidates() []string {
	return append(append([]string(nil), c.Chart.FontPaths...), fonts.DefaultCandidates()...)
}
