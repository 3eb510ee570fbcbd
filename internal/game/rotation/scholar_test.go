package rotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dpscalc/internal/game/character"
	"github.com/cory-johannsen/dpscalc/internal/game/rotation"
	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
)

type fixedCadence struct {
	gcd float64
	dot float64
}

func (f fixedCadence) GCD() float64 { return f.gcd }
func (f fixedCadence) DoTScalar() float64 { return f.dot }

func opts(tax float64, omitted int) rotation.Options {
	o := rotation.DefaultOptions()
	o.CasterTax = tax
	o.FillerCastsOmitted = omitted
	return o
}

func TestForJob(t *testing.T) {
	m, ok := rotation.ForJob(ruleset.SCH)
	require.True(t, ok)
	assert.IsType(t, rotation.Scholar{}, m)

	_, ok = rotation.ForJob(ruleset.WAR)
	assert.False(t, ok)
}

func TestDefaultOptions(t *testing.T) {
	o := rotation.DefaultOptions()
	assert.Equal(t, 0.12, o.CasterTax)
	assert.Equal(t, 4, o.BurstPerMinute)
	assert.Equal(t, 0, o.FillerCastsOmitted)
}

func TestScholar_FixedCycle(t *testing.T) {
	var s rotation.Scholar
	c := fixedCadence{gcd: 2.49, dot: 1.001}
	assert.InDelta(t, 186.36, s.CycleDuration(c, 0.12), 1e-9)
	assert.InDelta(t, 24184.2, s.TotalPotency(c, opts(0.12, 0)), 1e-9)
	assert.InDelta(t, 129.77141017385705, s.PPS(c, opts(0.12, 0)), 1e-9)
}

func TestScholar_FillerCastsOmitted(t *testing.T) {
	var s rotation.Scholar
	c := fixedCadence{gcd: 2.49, dot: 1.001}
	full := s.TotalPotency(c, opts(0.12, 0))
	assert.InDelta(t, full-3*2*290, s.TotalPotency(c, opts(0.12, 2)), 1e-9)
}

func TestScholar_FloorBranchCreditsFractionalTick(t *testing.T) {
	var s rotation.Scholar
	// (30 - 5) mod 2.62 = 1.42
	c := fixedCadence{gcd: 2.5, dot: 1.0}
	assert.InDelta(t, 171.36, s.CycleDuration(c, 0.12), 1e-9)
	assert.InDelta(t, 22241.2, s.TotalPotency(c, opts(0.12, 0)), 1e-9)
	assert.InDelta(t, 129.7922502334267, s.PPS(c, opts(0.12, 0)), 1e-9)
}

func TestScholar_RemainderExactlyThresholdRoundsDown(t *testing.T) {
	var s rotation.Scholar
	// (30 - 4.5) mod 3.0 = 1.5 exactly
	c := fixedCadence{gcd: 2.25, dot: 1.0}
	assert.Equal(t, 170.25, s.CycleDuration(c, 0.75))
	assert.InDelta(t, 20490.0, s.TotalPotency(c, opts(0.75, 0)), 1e-9)
}

func TestScholar_RemainderAroundThresholdSelectsOppositeBranches(t *testing.T) {
	var s rotation.Scholar
	c := fixedCadence{gcd: 2.25, dot: 1.0}

	// remainder 1.625: one more Broil per window
	above := s.CycleDuration(c, 0.734375)
	// remainder 1.375: rounded down
	below := s.CycleDuration(c, 0.765625)

	assert.Equal(t, 187.421875, above)
	assert.Equal(t, 170.984375, below)
	assert.InDelta(t, 22440.0, s.TotalPotency(c, opts(0.734375, 0)), 1e-9)
	assert.InDelta(t, 20507.5, s.TotalPotency(c, opts(0.765625, 0)), 1e-9)
}

func TestScholar_BurstPerMinute(t *testing.T) {
	var s rotation.Scholar
	c := fixedCadence{gcd: 2.49, dot: 1.001}
	o := opts(0.12, 0)
	base := s.TotalPotency(c, o)
	o.BurstPerMinute = 0
	assert.InDelta(t, base-3*4*100, s.TotalPotency(c, o), 1e-9)
}

func TestScholar_Window(t *testing.T) {
	var s rotation.Scholar
	c := fixedCadence{gcd: 2.49, dot: 1.001}
	for seconds, want := range map[float64]float64{
		25:  3210.56,
		30:  3930.7,
		60:  7821.4,
		180: 23314.2,
		300: 38837.0,
		600: 78054.0,
	} {
		assert.InDelta(t, want, s.TotalPotencyOverWindow(c, seconds, 0.12), 1e-9, "seconds=%v", seconds)
	}
}

func TestScholar_WithCharacterCadence(t *testing.T) {
	var s rotation.Scholar
	c := character.New(ruleset.MustJob(ruleset.SCH), 132, character.Values{Speed: 420})
	assert.InDelta(t, 129.77141017385705, s.PPS(c, rotation.DefaultOptions()), 1e-9)
}

func TestScholar_MaxFillerCastsOmitted(t *testing.T) {
	var s rotation.Scholar
	c := fixedCadence{gcd: 2.49, dot: 1.001}
	limit := s.MaxFillerCastsOmitted(c, 0.12)
	assert.Equal(t, 20, limit)

	o := rotation.DefaultOptions()
	o.FillerCastsOmitted = limit
	assert.InDelta(t, 6784.2, s.TotalPotency(c, o), 1e-9)
	o.BurstPerMinute = 0
	assert.InDelta(t, 5584.2, s.TotalPotency(c, o), 1e-9)
}

func TestProperty_ScholarNonNegativeWithinOmittedBound(t *testing.T) {
	var s rotation.Scholar
	rapid.Check(t, func(rt *rapid.T) {
		c := fixedCadence{
			gcd: rapid.Float64Range(1.5, 2.5).Draw(rt, "gcd"),
			dot: rapid.Float64Range(1.0, 1.2).Draw(rt, "dot"),
		}
		tax := rapid.Float64Range(0, 0.5).Draw(rt, "tax")
		o := rotation.Options{
			CasterTax:          tax,
			BurstPerMinute:     rapid.IntRange(0, 6).Draw(rt, "burst"),
			FillerCastsOmitted: rapid.IntRange(0, s.MaxFillerCastsOmitted(c, tax)).Draw(rt, "omitted"),
		}
		if p := s.TotalPotency(c, o); p < 0 {
			rt.Fatalf("total potency %v negative with %d omitted", p, o.FillerCastsOmitted)
		}
		if pps := s.PPS(c, o); pps < 0 {
			rt.Fatalf("pps %v negative with %d omitted", pps, o.FillerCastsOmitted)
		}
	})
}

func TestProperty_ScholarDeterministicAndNonNegative(t *testing.T) {
	var s rotation.Scholar
	rapid.Check(t, func(rt *rapid.T) {
		c := fixedCadence{
			gcd: rapid.Float64Range(1.5, 2.5).Draw(rt, "gcd"),
			dot: rapid.Float64Range(1.0, 1.2).Draw(rt, "dot"),
		}
		o := rotation.Options{
			CasterTax:      rapid.Float64Range(0, 0.5).Draw(rt, "tax"),
			BurstPerMinute: rapid.IntRange(0, 6).Draw(rt, "burst"),
		}
		pps := s.PPS(c, o)
		if pps < 0 || pps != s.PPS(c, o) {
			rt.Fatalf("pps %v not deterministic or negative", pps)
		}
		seconds := rapid.Float64Range(30, 1200).Draw(rt, "seconds")
		w := s.TotalPotencyOverWindow(c, seconds, o.CasterTax)
		if w < 0 || w != s.TotalPotencyOverWindow(c, seconds, o.CasterTax) {
			rt.Fatalf("window potency %v not deterministic or negative", w)
		}
	})
}
