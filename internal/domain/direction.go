package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Direction identifies a source -> target language pairing, e.g. "en-ru"
type Direction string

const (
	DirectionEnRu Direction = "en-ru"
	DirectionEnUk Direction = "en-uk"
)

// DirectionProfile is the static description of a translation direction
type DirectionProfile struct {
	Code       Direction `toml:"code"`
	Name       string    `toml:"name"`
	FlagSource string    `toml:"flag_source"`
	FlagTarget string    `toml:"flag_target"`
	Source     string    `toml:"source"`
	Target     string    `toml:"target"`
	Label      string    `toml:"label"`
	Example    string    `toml:"example"`
	Order      int       `toml:"order"`
}

// DisplayName returns the direction name, decorated with flags when asked
func (p DirectionProfile) DisplayName(decorated bool) string {
	if !decorated || p.FlagSource == "" || p.FlagTarget == "" {
		return p.Name
	}
	source, target, ok := strings.Cut(p.Name, " → ")
	if !ok {
		return p.FlagSource + " " + p.Name + " " + p.FlagTarget
	}
	return fmt.Sprintf("%s %s → %s %s", p.FlagSource, source, p.FlagTarget, target)
}

// FileName returns the name of the rendered audio file
func (p DirectionProfile) FileName() string {
	return fmt.Sprintf("english_words_%s.mp3", p.Target)
}

// Validate checks that the profile can drive synthesis
func (p DirectionProfile) Validate() error {
	switch {
	case p.Code == "":
		return fmt.Errorf("direction code is required")
	case p.Source == "":
		return fmt.Errorf("direction %s: source language is required", p.Code)
	case p.Target == "":
		return fmt.Errorf("direction %s: target language is required", p.Code)
	}
	return nil
}

// Directions is the registry of known direction profiles
type Directions struct {
	profiles map[Direction]DirectionProfile
}

// NewDirections builds a registry from the given profiles, later ones override earlier ones
func NewDirections(profiles ...DirectionProfile) (*Directions, error) {
	d := &Directions{profiles: make(map[Direction]DirectionProfile, len(profiles))}
	for _, p := range profiles {
		if err := d.Register(p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// DefaultDirections returns the built-in EN->RU and EN->UK profiles
func DefaultDirections() *Directions {
	d, _ := NewDirections(
		DirectionProfile{
			Code:       DirectionEnRu,
			Name:       "English → Русский",
			FlagSource: "🇬🇧",
			FlagTarget: "🇷🇺",
			Source:     "en",
			Target:     "ru",
			Label:      "VOCABULARY",
			Example:    "apple - яблоко\ncat - кот\nbook - книга",
			Order:      1,
		},
		DirectionProfile{
			Code:       DirectionEnUk,
			Name:       "English → Українська",
			FlagSource: "🇬🇧",
			FlagTarget: "🇺🇦",
			Source:     "en",
			Target:     "uk",
			Label:      "VOCABULARY",
			Example:    "apple - яблуко\ncat - кіт\nbook - книга",
			Order:      2,
		},
	)
	return d
}

// Register adds or replaces a profile
func (d *Directions) Register(p DirectionProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Name == "" {
		p.Name = string(p.Code)
	}
	d.profiles[p.Code] = p
	return nil
}

// Lookup resolves a direction to its profile
func (d *Directions) Lookup(code Direction) (DirectionProfile, error) {
	p, ok := d.profiles[code]
	if !ok {
		return DirectionProfile{}, fmt.Errorf("%w: %q", ErrUnknownDirection, code)
	}
	return p, nil
}

// All returns the profiles ordered by Order, then by code
func (d *Directions) All() []DirectionProfile {
	out := make([]DirectionProfile, 0, len(d.profiles))
	for _, p := range d.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Code < out[j].Code
	})
	return out
}
