// Package config loads harvest configuration via viper.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config holds all harvest pipeline configuration.
type Config struct {
	Scan     ScanConfig     `mapstructure:"scan"`
	Verifier VerifierConfig `mapstructure:"verifier"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ScanConfig holds file discovery and triage settings.
type ScanConfig struct {
	// Extension is the source-file extension to collect.
	Extension string `mapstructure:"extension"`

	// IgnoreDirs lists directory-name components excluded from traversal.
	IgnoreDirs []string `mapstructure:"ignore_dirs"`

	// IgnorePatterns are glob patterns matched against root-relative paths.
	IgnorePatterns []string `mapstructure:"ignore_patterns"`

	// VocabularyFile optionally points at a YAML file replacing the
	// built-in marker vocabulary.
	VocabularyFile string `mapstructure:"vocabulary_file"`
}

// VerifierConfig holds external verifier invocation settings.
type VerifierConfig struct {
	// Command is the verifier executable name or path.
	Command string `mapstructure:"command"`

	// TimeoutSeconds bounds a single verification attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// Concurrency is the number of files verified in parallel.
	// 1 preserves the strictly sequential baseline.
	Concurrency int `mapstructure:"concurrency"`
}

// OutputConfig holds manifest persistence settings.
type OutputConfig struct {
	// Dir is the output directory for the manifest.
	Dir string `mapstructure:"dir"`

	// ManifestName is the manifest file name inside Dir.
	ManifestName string `mapstructure:"manifest_name"`
}

// LoadConfigWithFile loads configuration from a specific file if provided,
// otherwise falls back to LoadConfig with the given directory.
func LoadConfigWithFile(dir, configFile string) (*Config, error) {
	if configFile != "" {
		return LoadConfigFromPath(configFile)
	}
	return LoadConfig(dir)
}

// LoadConfig loads configuration from harvest.yaml in the given directory.
// If no config file exists, defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("harvest")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromPath loads configuration from a specific file path.
// A missing file yields the defaults.
func LoadConfigFromPath(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if err := v.Unmarshal(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Scan defaults
	v.SetDefault("scan.extension", DefaultExtension)
	v.SetDefault("scan.ignore_dirs", DefaultIgnoreDirs())
	v.SetDefault("scan.ignore_patterns", []string{})
	v.SetDefault("scan.vocabulary_file", "")

	// Verifier defaults
	v.SetDefault("verifier.command", DefaultVerifierCommand)
	v.SetDefault("verifier.timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("verifier.concurrency", DefaultConcurrency)

	// Output defaults
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.manifest_name", DefaultManifestName)
}
