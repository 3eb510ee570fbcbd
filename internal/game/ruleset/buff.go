package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BuffID identifies a raid buff, e.g. "CHAIN".
type BuffID string

// Family classifies which hit rate a buff raises.
type Family int

const (
	// FamilyNone buffs do not change crit or direct-hit rates.
	FamilyNone Family = iota
	FamilyCrit
	FamilyDirectHit
)

var familyNames = map[Family]string{
	FamilyNone:      "none",
	FamilyCrit:      "crit",
	FamilyDirectHit: "dh",
}

func (f Family) String() string {
	if n, ok := familyNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// UnmarshalYAML decodes a family from its name; an empty value means FamilyNone.
func (f *Family) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*f = FamilyNone
		return nil
	}
	for fam, n := range familyNames {
		if n == s {
			*f = fam
			return nil
		}
	}
	return fmt.Errorf("unknown buff family %q", s)
}

// Buff is a party-wide effect with a fixed multiplier, duration, and cooldown.
//
// Precondition: ID must be non-empty and CooldownSec > 0 after loading.
type Buff struct {
	ID          BuffID  `yaml:"id"`
	Name        string  `yaml:"name"`
	Multiplier  float64 `yaml:"multiplier"`
	DurationSec int     `yaml:"duration_sec"`
	CooldownSec int     `yaml:"cooldown_sec"`
	Family      Family  `yaml:"family"`
}

// AverageEffect returns the buff's long-run contribution:
// multiplier * duration / cooldown.
func (b *Buff) AverageEffect() float64 {
	return b.Multiplier * float64(b.DurationSec) / float64(b.CooldownSec)
}
