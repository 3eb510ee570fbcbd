// Package combat computes expected damage from a character's stats, a skill,
// and a party composition.
//
// The pipeline mirrors the game's integer formula: every stat application
// floors its intermediate subtotal before the next stat is folded in.
package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dpscalc/internal/game/character"
	"github.com/cory-johannsen/dpscalc/internal/game/party"
	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
	"github.com/cory-johannsen/dpscalc/internal/game/stat"
)

const (
	// levelMainStat is the level-cap main stat used to weight the job modifier.
	levelMainStat = 340
	// roleBonusPercent is the main-stat bonus granted per distinct party role.
	roleBonusPercent = 0.01
	// healerTraitMultiplier is the healer job-wide magic damage trait.
	healerTraitMultiplier = 1.3
)

// Skill is the action being evaluated.
type Skill struct {
	Potency int
	// DoT marks damage-over-time effects, which also scale with speed.
	DoT bool
}

// Trait adjusts post-stat damage for job-wide traits.
type Trait func(damage int64, job *ruleset.Job) int64

// RoleTrait applies the healer damage trait and passes every other role
// through unchanged.
func RoleTrait(damage int64, job *ruleset.Job) int64 {
	if job != nil && job.Role == ruleset.RoleHealer {
		return int64(math.Floor(float64(damage) * healerTraitMultiplier))
	}
	return damage
}

// Breakdown is the full trace of one expected-damage evaluation.
type Breakdown struct {
	EffectiveMainStat int

	Base       int64
	AfterDet   int64
	AfterTen   int64
	AfterSpeed int64
	Scaled     int64
	// Damage is the post-trait damage of a normal hit.
	Damage     int64
	CritDamage int64
	DHDamage   int64
	CDHDamage  int64

	CritRate   float64
	DHRate     float64
	CDHRate    float64
	NormalRate float64

	// Expected is the probability-weighted damage.
	Expected float64
}

type options struct {
	critRate *float64
	dhRate   *float64
}

// Option configures a single evaluation.
type Option func(*options)

// WithCritRate overrides the crit rate derived from the character's stats.
// Raid buffs are still added on top.
func WithCritRate(rate float64) Option {
	return func(o *options) { o.critRate = &rate }
}

// WithDirectHitRate overrides the direct-hit rate derived from the
// character's stats. Raid buffs are still added on top.
func WithDirectHitRate(rate float64) Option {
	return func(o *options) { o.dhRate = &rate }
}

// Engine evaluates expected damage. It holds no per-evaluation state and is
// safe for concurrent use.
type Engine struct {
	logger *zap.Logger
	trait  Trait
}

// NewEngine returns an Engine that logs evaluation traces at debug level.
// A nil logger disables logging.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, trait: RoleTrait}
}

// ApplyStat scales damage by the stat's multiplier and floors the result.
func ApplyStat(damage int64, s stat.Stat) int64 {
	return stat.Apply(damage, s.Multiplier())
}

// ExpectedDamage returns the expected damage of skill for c in comp.
//
// Precondition: c and c.Job must be non-nil.
func (e *Engine) ExpectedDamage(c *character.Stats, skill Skill, comp party.Composition, opts ...Option) float64 {
	return e.Evaluate(c, skill, comp, opts...).Expected
}

// Evaluate runs the damage pipeline and returns every intermediate value.
// Rates are not clamped; overlapping buffs may push NormalRate below zero.
//
// Precondition: c and c.Job must be non-nil.
func (e *Engine) Evaluate(c *character.Stats, skill Skill, comp party.Composition, opts ...Option) Breakdown {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var b Breakdown
	b.EffectiveMainStat = int(math.Floor(float64(c.MainStat.Value) * (1 + roleBonusPercent*float64(comp.NRoles()))))
	mainStat := stat.New(stat.MainStat, b.EffectiveMainStat)

	weapon := int64(c.WeaponDamage) + stat.FloorDiv(levelMainStat*int64(c.Job.Modifier), 1000)
	b.Base = stat.FloorDiv(int64(skill.Potency)*weapon*(100+int64(mainStat.Points())), 100)
	b.AfterDet = ApplyStat(b.Base, c.Determination)
	b.AfterTen = ApplyStat(b.AfterDet, c.Tenacity)
	b.AfterSpeed = b.AfterTen
	if skill.DoT {
		b.AfterSpeed = ApplyStat(b.AfterTen, c.Speed)
	}
	b.Scaled = stat.FloorDiv(b.AfterSpeed, 100)

	// TODO: apply the flat damage multipliers of Divination, Embolden and
	// Technical Finish; only crit/dh rate buffs are modelled.
	b.Damage = e.trait(b.Scaled, c.Job)

	dhFactor := int64(c.DirectHit.Descriptor().Factor)
	b.CritDamage = ApplyStat(b.Damage, c.CriticalHit.Stat)
	b.DHDamage = stat.FloorDiv(b.Damage*dhFactor, 1000)
	b.CDHDamage = stat.FloorDiv(b.CritDamage*dhFactor, 1000)

	if o.critRate != nil {
		b.CritRate = *o.critRate
	} else {
		b.CritRate = c.CriticalHit.Probability()
	}
	if o.dhRate != nil {
		b.DHRate = *o.dhRate
	} else {
		b.DHRate = c.DirectHit.Probability()
	}

	for _, buff := range comp.RaidBuffs() {
		switch buff.Family {
		case ruleset.FamilyCrit:
			b.CritRate += buff.AverageEffect()
		case ruleset.FamilyDirectHit:
			b.DHRate += buff.AverageEffect()
		}
	}

	b.CDHRate = b.CritRate * b.DHRate
	b.NormalRate = 1 - b.CritRate - b.DHRate + b.CDHRate
	b.Expected = float64(b.Damage)*b.NormalRate +
		float64(b.CritDamage)*(b.CritRate-b.CDHRate) +
		float64(b.DHDamage)*(b.DHRate-b.CDHRate) +
		float64(b.CDHDamage)*b.CDHRate

	e.logger.Debug("expected damage",
		zap.String("job", string(c.Job.ID)),
		zap.Int("potency", skill.Potency),
		zap.Bool("dot", skill.DoT),
		zap.Int("n_roles", comp.NRoles()),
		zap.Int("effective_main_stat", b.EffectiveMainStat),
		zap.Int64("base", b.Base),
		zap.Int64("damage", b.Damage),
		zap.Int64("crit_damage", b.CritDamage),
		zap.Int64("dh_damage", b.DHDamage),
		zap.Int64("cdh_damage", b.CDHDamage),
		zap.Float64("crit_rate", b.CritRate),
		zap.Float64("dh_rate", b.DHRate),
		zap.Float64("expected", b.Expected),
	)
	return b
}
