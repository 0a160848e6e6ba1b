package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoMap    = errors.New("scenario has neither map nor map_file")
	ErrBadRules = errors.New("invalid rules")
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadScenario reads a YAML scenario, fills defaults and loads map_file
// relative to the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	var s Scenario
	if err := loadYAML(path, &s); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	s.applyDefaults()
	if err := s.LoadMap(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadMap fills Map from MapFile when no inline map is given. Relative
// paths are resolved against dir.
func (s *Scenario) LoadMap(dir string) error {
	if s.Map != "" {
		return nil
	}
	if s.MapFile == "" {
		return ErrNoMap
	}
	p := s.MapFile
	if !filepath.IsAbs(p) && dir != "" {
		p = filepath.Join(dir, p)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("read map %s: %w", p, err)
	}
	s.Map = string(b)
	return nil
}

func (s *Scenario) Validate() error {
	if s.Rules.HitPoints < 0 || s.Rules.AttackPower < 0 || s.Rules.MaxRounds < 0 {
		return fmt.Errorf("%w: hit_points, attack_power and max_rounds must be non-negative", ErrBadRules)
	}
	for name, fc := range s.Factions {
		if fc.HitPoints < 0 || fc.AttackPower < 0 {
			return fmt.Errorf("%w: faction %s has negative stats", ErrBadRules, name)
		}
	}
	if s.Boost.Workers < 0 {
		return fmt.Errorf("%w: boost.workers must be non-negative", ErrBadRules)
	}
	return nil
}
