package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for sira-setup. Every field has a
// default, so running without a config file reproduces the behavior of the
// original setup scripts.
type Config struct {
	VenvDir      string `yaml:"venv"`         // Virtual environment directory
	Requirements string `yaml:"requirements"` // Dependency manifest path
	Python       string `yaml:"python"`       // Interpreter version constraint
	IndexURL     string `yaml:"index_url"`    // Alternative package index
	EnvFile      string `yaml:"env_file"`     // Environments file (HCL)
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		VenvDir:      ".venv",
		Requirements: "requirements.txt",
		Python:       ">=3.8",
		EnvFile:      "environments.hcl",
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment
// variables in the index URL and filling unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.IndexURL = resolveValue(cfg.IndexURL)

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".sirasetup.yaml",
		".sirasetup.yml",
		"sirasetup.yaml",
		"sirasetup.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveValue expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the value from the
// file. This lets index URLs carry credentials without storing them inline.
func resolveValue(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read value file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read value from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for malformed configuration values.
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.VenvDir) == "" {
		return errors.New("venv must not be empty")
	}
	if cfg.VenvDir == "/" || cfg.VenvDir == "." || cfg.VenvDir == ".." {
		return fmt.Errorf("refusing to use %q as the virtual environment directory", cfg.VenvDir)
	}
	if strings.TrimSpace(cfg.Requirements) == "" {
		return errors.New("requirements must not be empty")
	}
	return nil
}
