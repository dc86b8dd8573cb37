package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/chargewatch/internal/session"
)

// Config is the top-level chargewatch configuration. It is materialized
// once per run and passed down; nothing below the command layer reads
// ambient state.
type Config struct {
	HelperCommand       string  `mapstructure:"helper_command"`
	APIBaseURL          string  `mapstructure:"api_base_url"`
	FetchTimeoutSeconds int     `mapstructure:"fetch_timeout_seconds"`
	DefaultACN          string  `mapstructure:"default_acn"`
	DefaultAccount      string  `mapstructure:"default_account"`
	VoltageBasis        float64 `mapstructure:"voltage_basis"`
	TierHighAmps        float64 `mapstructure:"tier_high_amps"`
	TierMedAmps         float64 `mapstructure:"tier_med_amps"`
	ExportDir           string  `mapstructure:"export_dir"`
	Output              Output  `mapstructure:"output"`
}

// Output defines output preferences.
type Output struct {
	Color       bool `mapstructure:"color"`
	Width       int  `mapstructure:"width"`
	ChartHeight int  `mapstructure:"chart_height"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A .env in the working
// directory is loaded first so helper credentials and overrides reach the
// environment before viper reads it.
func Load(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("helper_command", DefaultHelperCommand)
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("fetch_timeout_seconds", DefaultFetchTimeoutSeconds)
	v.SetDefault("default_acn", DefaultACN)
	v.SetDefault("default_account", DefaultAccount)
	v.SetDefault("voltage_basis", DefaultVoltageBasis)
	v.SetDefault("tier_high_amps", DefaultTierHighAmps)
	v.SetDefault("tier_med_amps", DefaultTierMedAmps)
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("output.chart_height", DefaultOutput.ChartHeight)

	v.SetEnvPrefix("CHARGEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ExportDir = expandPath(cfg.ExportDir)

	return &cfg, nil
}

// FetchTimeout returns the helper invocation bound as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ClassifyOptions builds the classifier parameters from config. The
// microsession threshold is supplied per run, not from config.
func (c *Config) ClassifyOptions(microThresholdKWh float64) session.ClassifyOptions {
	return session.ClassifyOptions{
		MicroThresholdKWh: microThresholdKWh,
		VoltageBasis:      c.VoltageBasis,
		TierHighAmps:      c.TierHighAmps,
		TierMedAmps:       c.TierMedAmps,
	}
}
