// Package config loads tool configuration from environment variables and
// an optional YAML file. Environment takes precedence over the file.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces every environment variable (TAGSTATS_PATHS_DATA_DIR
// and friends).
const envPrefix = "TAGSTATS"

// DefaultConfigFile is consulted when no explicit config path is given.
const DefaultConfigFile = "tagstats.yaml"

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text"`
}

// PathsConfig locates the match archive and the derived-data directories.
// Relative paths resolve against the working directory so the tools can be
// pointed at any archive checkout.
type PathsConfig struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	AnalysisDir string `yaml:"analysis_dir" envconfig:"ANALYSIS_DIR" default:"analysis"`
	ReportDir   string `yaml:"report_dir" envconfig:"REPORT_DIR" default:"."`
}

// Load reads configuration from the environment, then fills any unset
// values from configFile if it exists. Pass "" to use DefaultConfigFile.
func Load(configFile string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile
	}
	fileCfg, err := loadFromFile(configFile)
	switch {
	case err == nil:
		cfg = merge(*fileCfg, cfg)
	case os.IsNotExist(err) && !explicit:
		// Optional default file; nothing to merge.
	default:
		return nil, fmt.Errorf("load config file %s: %w", configFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// merge fills unset env values from the file config. Environment wins for
// any field it sets; envconfig defaults count as unset only when the file
// provides a value, which the empty-string checks below approximate the
// same way the predecessor tooling did.
func merge(fileCfg, envCfg Config) Config {
	if isEnvDefault("LOGGING_LEVEL") && fileCfg.Logging.Level != "" {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if isEnvDefault("LOGGING_FORMAT") && fileCfg.Logging.Format != "" {
		envCfg.Logging.Format = fileCfg.Logging.Format
	}
	if isEnvDefault("PATHS_DATA_DIR") && fileCfg.Paths.DataDir != "" {
		envCfg.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if isEnvDefault("PATHS_ANALYSIS_DIR") && fileCfg.Paths.AnalysisDir != "" {
		envCfg.Paths.AnalysisDir = fileCfg.Paths.AnalysisDir
	}
	if isEnvDefault("PATHS_REPORT_DIR") && fileCfg.Paths.ReportDir != "" {
		envCfg.Paths.ReportDir = fileCfg.Paths.ReportDir
	}
	return envCfg
}

func isEnvDefault(suffix string) bool {
	_, set := os.LookupEnv(envPrefix + "_" + suffix)
	return !set
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	if c.Paths.DataDir == "" || c.Paths.AnalysisDir == "" || c.Paths.ReportDir == "" {
		return fmt.Errorf("paths must not be empty")
	}
	return nil
}
