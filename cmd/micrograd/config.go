package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// trainConfig is the YAML form of the train command's flags.
//
//	epochs: 200
//	lr: 0.05
//	hidden: [4, 4]
//	seed: 42
type trainConfig struct {
	Epochs   int     `yaml:"epochs"`
	LR       float64 `yaml:"lr"`
	Momentum float64 `yaml:"momentum"`
	Hidden   []int   `yaml:"hidden"`
	Seed     int64   `yaml:"seed"`
	Every    int     `yaml:"every"`
	RankDir  string  `yaml:"rankdir"`
}

// loadTrainConfig reads a YAML training config. Unknown keys are rejected.
func loadTrainConfig(path string) (trainConfig, error) {
	var cfg trainConfig

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	for _, n := range cfg.Hidden {
		if n <= 0 {
			return cfg, fmt.Errorf("parse config %s: invalid hidden layer size %d", path, n)
		}
	}
	return cfg, nil
}

// merge copies every value of file whose flag was not given on the command
// line. Zero values in file leave cfg untouched.
func (cfg *trainConfig) merge(file trainConfig, fs *flag.FlagSet) {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if !explicit["epochs"] && file.Epochs != 0 {
		cfg.Epochs = file.Epochs
	}
	if !explicit["lr"] && file.LR != 0 {
		cfg.LR = file.LR
	}
	if !explicit["momentum"] && file.Momentum != 0 {
		cfg.Momentum = file.Momentum
	}
	if !explicit["hidden"] && file.Hidden != nil {
		cfg.Hidden = file.Hidden
	}
	if !explicit["seed"] && file.Seed != 0 {
		cfg.Seed = file.Seed
	}
	if !explicit["every"] && file.Every != 0 {
		cfg.Every = file.Every
	}
	if !explicit["rankdir"] && file.RankDir != "" {
		cfg.RankDir = file.RankDir
	}
}
