package main

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	gareporter "github.com/gareporter/go-gareporter"
)

// settings is the YAML configuration file format.
type settings struct {
	TrackerID            string            `yaml:"trackerId"`
	BaseURI              string            `yaml:"baseURI"`
	StorePath            string            `yaml:"storePath"`
	Verbose              bool              `yaml:"verbose"`
	AnonymizeIP          *bool             `yaml:"anonymizeIP"`
	UsesVendorIdentifier bool              `yaml:"usesVendorIdentifier"`
	CustomDimensions     map[string]string `yaml:"customDimensions"`
}

func loadSettings(path string) (settings, error) {
	var s settings
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

func (s settings) reporterConfig() gareporter.Configuration {
	return gareporter.Configuration{
		BaseURI:                s.BaseURI,
		Verbose:                s.Verbose,
		DisableIPAnonymization: s.AnonymizeIP != nil && !*s.AnonymizeIP,
		UsesVendorIdentifier:   s.UsesVendorIdentifier,
		CustomDimensions:       s.CustomDimensions,
	}
}
