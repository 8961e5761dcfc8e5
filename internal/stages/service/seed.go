package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML shape of a catalog seed:
//
//	stages:
//	  - Documents Submitted
//	  - Visa Filed
type SeedFile struct {
	Stages []string `yaml:"stages"`
}

// DefaultSeed is used when no seed file is configured.
var DefaultSeed = []string{
	"New",
	"Documents Submitted",
	"Offer Received",
	"Visa Filed",
	"Visa Approved",
	"Enrolled",
}

// LoadSeedFile reads stage names from a YAML file.
func LoadSeedFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(raw []byte) ([]string, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return seed.Stages, nil
}
