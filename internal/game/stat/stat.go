// Package stat converts raw equipment stat values into damage multipliers
// and hit probabilities.
//
// All conversions are pure functions of a Descriptor and a raw value. Integer
// division floors toward negative infinity, so a stat below its base yields a
// multiplier below the neutral baseline rather than being clamped.
package stat

import "fmt"

// Kind identifies a recognized stat.
type Kind int

const (
	MainStat Kind = iota
	Determination
	CriticalHit
	DirectHit
	Speed
	Tenacity
	Piety
	// GCD is the unmodified global cooldown in milliseconds.
	GCD
	// Precision is the fixed-point denominator for probabilities.
	Precision
)

var kindNames = [...]string{
	MainStat:      "main",
	Determination: "det",
	CriticalHit:   "crit",
	DirectHit:     "dh",
	Speed:         "speed",
	Tenacity:      "ten",
	Piety:         "pie",
	GCD:           "gcd",
	Precision:     "precision",
}

// String returns the short name used in sheets and logs.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

const (
	// mainStatDivisor scales the main-stat delta. It differs from the
	// divisor used for every other stat and must not be unified.
	mainStatDivisor = 340
	substatDivisor  = 3300

	// directHitMultiplier is the fixed damage multiplier of a direct hit.
	directHitMultiplier = 1.25
)

// Descriptor holds the immutable formula constants for one stat kind.
type Descriptor struct {
	Kind Kind
	// Base is the value at which the stat contributes exactly Scalar.
	Base   int
	Factor int
	Scalar int
}

var descriptors = [...]Descriptor{
	MainStat:      {Kind: MainStat, Base: 340, Factor: 165, Scalar: 0},
	Determination: {Kind: Determination, Base: 340, Factor: 130, Scalar: 0},
	CriticalHit:   {Kind: CriticalHit, Base: 380, Factor: 200, Scalar: 400},
	DirectHit:     {Kind: DirectHit, Base: 380, Factor: 1250, Scalar: 0},
	Speed:         {Kind: Speed, Base: 380, Factor: 130, Scalar: 0},
	Tenacity:      {Kind: Tenacity, Base: 380, Factor: 100, Scalar: 0},
	Piety:         {Kind: Piety, Base: 340, Factor: 1, Scalar: 0},
	GCD:           {Kind: GCD, Base: 2500, Factor: 1, Scalar: 0},
	Precision:     {Kind: Precision, Base: 1000, Factor: 1, Scalar: 0},
}

// DescriptorFor returns the constants for k.
//
// Precondition: k must be one of the declared Kind constants.
func DescriptorFor(k Kind) Descriptor {
	if k < 0 || int(k) >= len(descriptors) {
		panic(fmt.Sprintf("stat.DescriptorFor: precondition violated: unknown kind %d", int(k)))
	}
	return descriptors[k]
}

// Points returns the integer multiplier contribution of value:
// Factor*(value-Base) // divisor + Scalar, where the divisor is 340 for the
// main stat and 3300 otherwise. The ratio is floored before Scalar is added.
func Points(d Descriptor, value int) int {
	divisor := substatDivisor
	if d.Kind == MainStat {
		divisor = mainStatDivisor
	}
	return FloorDiv(d.Factor*(value-d.Base), divisor) + d.Scalar
}

// Multiplier returns the damage multiplier for value. Direct hit always
// returns 1.25; every other kind returns Points as a float.
func Multiplier(d Descriptor, value int) float64 {
	if d.Kind == DirectHit {
		return directHitMultiplier
	}
	return float64(Points(d, value))
}

// Stat is one equipped stat value.
type Stat struct {
	Kind  Kind
	Value int
}

// New returns a Stat of kind k with the given raw value.
func New(k Kind, value int) Stat {
	return Stat{Kind: k, Value: value}
}

// Descriptor returns the constants governing s.
func (s Stat) Descriptor() Descriptor {
	return DescriptorFor(s.Kind)
}

// Points returns the integer multiplier contribution of s.
func (s Stat) Points() int {
	return Points(s.Descriptor(), s.Value)
}

// Multiplier returns the damage multiplier of s.
func (s Stat) Multiplier() float64 {
	return Multiplier(s.Descriptor(), s.Value)
}

// Integer is the set of integer types FloorDiv accepts.
type Integer interface {
	~int | ~int64
}

// FloorDiv divides a by b rounding toward negative infinity, as the game's
// integer formulas do.
//
// Precondition: b > 0.
func FloorDiv[T Integer](a, b T) T {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
