// Package config loads merge defaults from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config mirrors the command-line flags. Zero values mean "not set".
type Config struct {
	Source     string `yaml:"source"`
	Output     string `yaml:"output"`
	Pattern    string `yaml:"pattern"`
	Recursive  bool   `yaml:"recursive"`
	ValuesOnly bool   `yaml:"values_only"`
}

// Load reads the YAML file at path. Unknown keys are rejected. Relative
// source and output paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.Source = resolve(base, cfg.Source)
	cfg.Output = resolve(base, cfg.Output)
	return cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
