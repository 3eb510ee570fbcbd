// Package character defines a character's stat line and its derived cadence.
package character

import (
	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
	"github.com/cory-johannsen/dpscalc/internal/game/stat"
)

// Values holds a character's raw stat values as entered from gear.
type Values struct {
	MainStat      int `yaml:"main"`
	Determination int `yaml:"det"`
	CriticalHit   int `yaml:"crit"`
	DirectHit     int `yaml:"dh"`
	Speed         int `yaml:"speed"`
	Tenacity      int `yaml:"ten"`
	Piety         int `yaml:"pie"`
}

// Stats is a character's full, immutable stat line. Derived quantities are
// computed on every call and never cached.
type Stats struct {
	Name         string
	Job          *ruleset.Job
	WeaponDamage int

	MainStat      stat.Stat
	Determination stat.Stat
	CriticalHit   stat.ProbabilisticStat
	DirectHit     stat.ProbabilisticStat
	Speed         stat.Stat
	Tenacity      stat.Stat
	Piety         stat.Stat
}

// New builds a Stats from raw values.
//
// Precondition: job should be non-nil; the numeric core does not validate.
func New(job *ruleset.Job, weaponDamage int, v Values) *Stats {
	return &Stats{
		Job:           job,
		WeaponDamage:  weaponDamage,
		MainStat:      stat.New(stat.MainStat, v.MainStat),
		Determination: stat.New(stat.Determination, v.Determination),
		CriticalHit:   stat.NewProbabilistic(stat.CriticalHit, v.CriticalHit),
		DirectHit:     stat.NewProbabilistic(stat.DirectHit, v.DirectHit),
		Speed:         stat.New(stat.Speed, v.Speed),
		Tenacity:      stat.New(stat.Tenacity, v.Tenacity),
		Piety:         stat.New(stat.Piety, v.Piety),
	}
}

// Values returns the raw stat values of s.
func (s *Stats) Values() Values {
	return Values{
		MainStat:      s.MainStat.Value,
		Determination: s.Determination.Value,
		CriticalHit:   s.CriticalHit.Value,
		DirectHit:     s.DirectHit.Value,
		Speed:         s.Speed.Value,
		Tenacity:      s.Tenacity.Value,
		Piety:         s.Piety.Value,
	}
}

// WithValues returns a copy of s with its raw stats replaced.
func (s *Stats) WithValues(v Values) *Stats {
	out := New(s.Job, s.WeaponDamage, v)
	out.Name = s.Name
	return out
}

// GCD returns the character's global cooldown in seconds.
func (s *Stats) GCD() float64 {
	return stat.GCDSeconds(s.Speed)
}

// DoTScalar returns the speed-derived damage-over-time multiplier.
func (s *Stats) DoTScalar() float64 {
	return stat.DoTScalar(s.Speed)
}
