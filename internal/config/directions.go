package config

import (
	"fmt"

	"linguabird/internal/domain"

	"github.com/BurntSushi/toml"
)

type directionsFile struct {
	Directions []domain.DirectionProfile `toml:"direction"`
}

// LoadDirections returns the built-in directions, extended or overridden by
// the [[direction]] tables of a TOML file when path is not empty.
func LoadDirections(path string) (*domain.Directions, error) {
	dirs := domain.DefaultDirections()
	if path == "" {
		return dirs, nil
	}

	var file directionsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read directions file: %w", err)
	}
	for _, p := range file.Directions {
		if err := dirs.Register(p); err != nil {
			return nil, fmt.Errorf("invalid directions file %s: %w", path, err)
		}
	}
	return dirs, nil
}
