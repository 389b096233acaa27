package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Listen  string  `yaml:"listen"`
	Admin   Admin   `yaml:"admin"`
	Logger  Logger  `yaml:"logger"`
	Storage Storage `yaml:"storage"`
	Scoring Scoring `yaml:"scoring"`
	CORS    CORS    `yaml:"cors"`
}

type Logger struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Storage struct {
	Database string `yaml:"database"`
}

type Admin struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	Token   Token  `yaml:"token"`
}

type Token struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
	Password    string `yaml:"password"`
}

// Scoring holds the blood bonus multipliers applied to the first three
// eligible solves of a challenge. Each factor must be at least 1.0.
type Scoring struct {
	FirstBloodFactor  float64 `yaml:"first_blood_factor"`
	SecondBloodFactor float64 `yaml:"second_blood_factor"`
	ThirdBloodFactor  float64 `yaml:"third_blood_factor"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	// Unset factors fall back to the platform defaults.
	if cfg.Scoring.FirstBloodFactor == 0 {
		cfg.Scoring.FirstBloodFactor = 2.0
	}
	if cfg.Scoring.SecondBloodFactor == 0 {
		cfg.Scoring.SecondBloodFactor = 1.5
	}
	if cfg.Scoring.ThirdBloodFactor == 0 {
		cfg.Scoring.ThirdBloodFactor = 1.25
	}

	if err := validateScoring(cfg.Scoring); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateScoring(s Scoring) error {
	for name, factor := range map[string]float64{
		"first_blood_factor":  s.FirstBloodFactor,
		"second_blood_factor": s.SecondBloodFactor,
		"third_blood_factor":  s.ThirdBloodFactor,
	} {
		if factor < 1.0 {
			return fmt.Errorf("scoring.%s must be >= 1.0, got %v", name, factor)
		}
	}
	return nil
}
