package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ukaji3/layoutview/pkg/layoutview/classifier"
)

const (
	configFileName = "layoutview"
	configFileType = "yaml"
	envPrefix      = "LAYOUTVIEW"
)

// Config holds the merged settings from defaults, config file, environment
// and flags, in increasing priority.
type Config struct {
	Output     string                `mapstructure:"output"`
	Format     string                `mapstructure:"format"`
	Pretty     bool                  `mapstructure:"pretty"`
	SheetsDir  string                `mapstructure:"sheets_dir"`
	SkipHidden bool                  `mapstructure:"skip_hidden"`
	Workers    int                   `mapstructure:"workers"`
	Cache      string                `mapstructure:"cache"`
	Verbose    bool                  `mapstructure:"verbose"`
	Thresholds classifier.Thresholds `mapstructure:"thresholds"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"output":      "output",
	"format":      "format",
	"pretty":      "pretty",
	"sheets-dir":  "sheets_dir",
	"skip-hidden": "skip_hidden",
	"workers":     "workers",
	"cache":       "cache",
	"verbose":     "verbose",
}

// loadConfig reads the optional config file and binds env and flags.
// A missing layoutview.yaml in the working directory is not an error; a
// missing file named by --config is.
func loadConfig(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	th := classifier.DefaultThresholds()
	v.SetDefault("output", "")
	v.SetDefault("format", "json")
	v.SetDefault("pretty", false)
	v.SetDefault("sheets_dir", "")
	v.SetDefault("skip_hidden", false)
	v.SetDefault("workers", 1)
	v.SetDefault("cache", "")
	v.SetDefault("verbose", false)
	v.SetDefault("thresholds.tabular_max_sparsity", th.TabularMaxSparsity)
	v.SetDefault("thresholds.tabular_min_data_rows", th.TabularMinDataRows)
	v.SetDefault("thresholds.form_min_dominant_share", th.FormMinDominantShare)
	v.SetDefault("thresholds.form_max_other_density", th.FormMaxOtherDensity)
	v.SetDefault("thresholds.form_min_rows", th.FormMinRows)
	v.SetDefault("thresholds.sparse_min_sparsity", th.SparseMinSparsity)
}
