package character

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
)

// Sheet is the YAML form of a character.
type Sheet struct {
	Name         string `yaml:"name"`
	Job          string `yaml:"job"`
	WeaponDamage int    `yaml:"weapon_damage"`
	Stats        Values `yaml:"stats"`
}

// ParseSheet decodes a sheet and resolves its job against reg.
// Unknown fields are rejected.
//
// Precondition: reg must be non-nil.
// Postcondition: Returns a Stats or a non-nil error.
func ParseSheet(data []byte, reg *ruleset.Registry) (*Stats, error) {
	var sh Sheet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sh); err != nil {
		return nil, fmt.Errorf("decoding sheet: %w", err)
	}
	if sh.Job == "" {
		return nil, errors.New("sheet job must not be empty")
	}
	jobs, err := reg.ResolveJobs([]string{sh.Job})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sh.Name, err)
	}
	s := New(jobs[0], sh.WeaponDamage, sh.Stats)
	s.Name = sh.Name
	if s.Name == "" {
		s.Name = string(jobs[0].ID)
	}
	return s, nil
}

// LoadSheet reads and parses the sheet at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a Stats or a non-nil error.
func LoadSheet(path string, reg *ruleset.Registry) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", path, err)
	}
	s, err := ParseSheet(data, reg)
	if err != nil {
		return nil, fmt.Errorf("parsing sheet %s: %w", path, err)
	}
	return s, nil
}
