package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig is the parsed form of a board directory's config.yaml.
// LoadBoardConfig reads it through LoadLocalConfig and layers the values
// into the viper hierarchy.
type LocalConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Open *bool  `yaml:"open"`
}

// LoadLocalConfig reads and parses config.yaml directly from the given board
// directory. Returns an empty LocalConfig (not nil) if the file doesn't
// exist or can't be parsed.
func LoadLocalConfig(dir string) *LocalConfig {
	configPath := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(configPath) // #nosec G304 - config file path from board dir
	if err != nil {
		return &LocalConfig{}
	}

	var cfg LocalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &LocalConfig{}
	}

	return &cfg
}
