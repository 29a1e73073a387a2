// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format           string `yaml:"format"`
		Verbose          bool   `yaml:"verbose"`
		Debug            bool   `yaml:"debug"`
		NoColor          bool   `yaml:"no_color"`
		Recursive        bool   `yaml:"recursive"`
		IncludePackaging bool   `yaml:"include_packaging"`
		NoSimplify       bool   `yaml:"no_simplify"`
		AliasFile        string `yaml:"alias_file"`
	} `yaml:"defaults"`
}

// LoadConfig loads configuration from the specified file path. An empty
// path returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.Recursive = false
	config.Defaults.IncludePackaging = false
	config.Defaults.NoSimplify = false
	config.Defaults.AliasFile = ""

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the given config file, falling back to the
// defaults on any error so a missing or bad config file never aborts a run.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// FindConfigFile returns the first config file found in the standard
// locations, or "" when none exists.
func FindConfigFile() string {
	// Check current directory first
	for _, name := range []string{
		"copyright-scan.yaml",
		"copyright-scan.yml",
		".copyright-scan.yaml",
		".copyright-scan.yml",
	} {
		if fileExists(name) {
			return name
		}
	}

	// Check the user configuration directory
	if dir, err := os.UserConfigDir(); err == nil {
		standard := filepath.Join(dir, "copyright-scan", "config.yaml")
		if fileExists(standard) {
			return standard
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
