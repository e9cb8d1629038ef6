package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultContentDir     = "content"
	DefaultOutputDir      = "public"
	DefaultStaticDir      = "static"
	DefaultSiteTitle      = "HVAC Guide"
	DefaultWordsPerMinute = 200
	DefaultRelatedLimit   = 4

	envPrefix  = "HVACGUIDE"
	configName = "hvacguide"
)

type Config struct {
	ContentDir     string       `mapstructure:"contentDir"`
	OutputDir      string       `mapstructure:"outputDir"`
	StaticDir      string       `mapstructure:"staticDir"`
	BaseURL        string       `mapstructure:"baseURL"`
	SiteTitle      string       `mapstructure:"siteTitle"`
	WordsPerMinute int          `mapstructure:"wordsPerMinute"`
	RelatedLimit   int          `mapstructure:"relatedLimit"`
	Build          BuildConfig  `mapstructure:"build"`
	Server         ServerConfig `mapstructure:"server"`
	Index          IndexConfig  `mapstructure:"index"`
	Log            LogConfig    `mapstructure:"log"`
}

type BuildConfig struct {
	Workers int `mapstructure:"workers"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Watch bool `mapstructure:"watch"`
}

type IndexConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FlagKeys maps command-line flag names to config keys. Flags that are
// registered on the command and explicitly set win over file and env values.
var FlagKeys = map[string]string{
	"content":   "contentDir",
	"out":       "outputDir",
	"log-level": "log.level",
	"port":      "server.port",
	"watch":     "server.watch",
	"workers":   "build.workers",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("contentDir", DefaultContentDir)
	v.SetDefault("outputDir", DefaultOutputDir)
	v.SetDefault("staticDir", DefaultStaticDir)
	v.SetDefault("baseURL", "")
	v.SetDefault("siteTitle", DefaultSiteTitle)
	v.SetDefault("wordsPerMinute", DefaultWordsPerMinute)
	v.SetDefault("relatedLimit", DefaultRelatedLimit)
	v.SetDefault("build.workers", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.watch", false)
	v.SetDefault("index.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load resolves configuration from defaults, an optional config file,
// HVACGUIDE_* environment variables and the given flags, in increasing
// precedence. An empty cfgFile looks for hvacguide.yaml in the working
// directory and tolerates its absence. The returned string is the config
// file actually used, or empty.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

// Validate rejects settings no component can run with
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ContentDir) == "" {
		errs = append(errs, errors.New("contentDir must not be empty"))
	}
	if c.WordsPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("wordsPerMinute must be positive, got %d", c.WordsPerMinute))
	}
	if c.RelatedLimit < 0 {
		errs = append(errs, fmt.Errorf("relatedLimit must not be negative, got %d", c.RelatedLimit))
	}
	if c.Build.Workers <= 0 {
		errs = append(errs, fmt.Errorf("build.workers must be positive, got %d", c.Build.Workers))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Permalink joins BaseURL with a site-relative path
func (c *Config) Permalink(path string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + path
}
