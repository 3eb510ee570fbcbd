// Package rotation models per-job ability cycles and converts a character's
// cadence into realized potency per second.
package rotation

import (
	"math"

	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
)

const (
	// DefaultCasterTax is the per-cast latency in seconds.
	DefaultCasterTax = 0.12
	// DefaultBurstPerMinute is the number of burst-window casts per minute.
	DefaultBurstPerMinute = 4
)

// Cadence supplies the speed-derived inputs of a rotation.
type Cadence interface {
	// GCD returns the global cooldown in seconds.
	GCD() float64
	// DoTScalar returns the damage-over-time tick multiplier.
	DoTScalar() float64
}

// Options controls the fixed-cycle estimate.
type Options struct {
	CasterTax      float64
	BurstPerMinute int
	// FillerCastsOmitted is the number of filler casts lost per minute of the
	// cycle, e.g. to forced downtime. It is bounded by
	// Model.MaxFillerCastsOmitted.
	FillerCastsOmitted int
}

// DefaultOptions returns Options with the default caster tax and burst rate.
func DefaultOptions() Options {
	return Options{
		CasterTax:      DefaultCasterTax,
		BurstPerMinute: DefaultBurstPerMinute,
	}
}

// Model is a job's rotation. Implementations must be deterministic pure
// functions of their arguments.
type Model interface {
	// CycleDuration returns the wall-clock length in seconds of one full cycle.
	CycleDuration(c Cadence, castTax float64) float64
	// TotalPotency returns the potency dealt over one full cycle.
	TotalPotency(c Cadence, opts Options) float64
	// PPS returns TotalPotency divided by CycleDuration.
	PPS(c Cadence, opts Options) float64
	// MaxFillerCastsOmitted returns the largest Options.FillerCastsOmitted for
	// which TotalPotency and PPS stay non-negative.
	MaxFillerCastsOmitted(c Cadence, castTax float64) int
	// TotalPotencyOverWindow estimates the potency dealt over a fight of the
	// given length in seconds.
	TotalPotencyOverWindow(c Cadence, seconds, castTax float64) float64
}

var models = map[ruleset.JobID]Model{
	ruleset.SCH: Scholar{},
}

// ForJob returns the rotation model for id.
func ForJob(id ruleset.JobID) (Model, bool) {
	m, ok := models[id]
	return m, ok
}

// mod returns x modulo y with the sign of y, matching floored division.
func mod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}
