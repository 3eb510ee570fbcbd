package rotation

import "math"

// Scholar potencies.
const (
	broilPotency       = 290
	ruinIIPotency      = 200
	bioPotency         = 70
	energyDrainPotency = 100
)

const (
	// bioWindow is the length in seconds of one Bio refresh.
	bioWindow = 30.0
	// refreshesPerCycle is the number of Bio refreshes in a three-minute cycle.
	refreshesPerCycle = 6
	// bioTicksPerRefresh is the number of Bio ticks in one refresh window.
	bioTicksPerRefresh = 10
	bioTickSeconds     = 3.0
	// remainderThreshold is the leftover time after which one extra Broil
	// fits into a refresh window.
	remainderThreshold = 1.5
	cycleMinutes       = 3
	// ruinIIPerCycle is the number of Ruin II casts that replace Broils each cycle.
	ruinIIPerCycle = 4
	// extraBroilsPerCycle covers the two cycle windows that carry one more Broil.
	extraBroilsPerCycle = 2
)

// Scholar models the healer archetype: one Bio per 30s window, Broil filler,
// Ruin II while moving, and Energy Drain during burst windows.
type Scholar struct{}

var _ Model = Scholar{}

// fillerSpan returns the window time left after the Bio and Swiftcast GCDs,
// the filler cast time, and the leftover remainder.
func fillerSpan(gcd, castTax float64) (span, cast, rem float64) {
	span = bioWindow - 2*gcd
	cast = gcd + castTax
	return span, cast, mod(span, cast)
}

// fillerCasts returns how many Broils fit in one window. A remainder strictly
// above 1.5s rounds up; otherwise the count rounds down.
func fillerCasts(gcd, castTax float64) (float64, bool, float64) {
	span, cast, rem := fillerSpan(gcd, castTax)
	if rem > remainderThreshold {
		return math.Ceil(span / cast), true, rem
	}
	return math.Floor(span / cast), false, rem
}

// CycleDuration returns the real length of a nominal three-minute cycle,
// which is shorter than 180s because faster GCDs compress the filler.
func (Scholar) CycleDuration(c Cadence, castTax float64) float64 {
	gcd := c.GCD()
	casts, _, _ := fillerCasts(gcd, castTax)
	return refreshesPerCycle*(2*gcd+casts*(gcd+castTax)) - 1*castTax
}

// TotalPotency sums burst, filler, and Bio potency over one cycle. When the
// filler count rounds down, the unused remainder is credited as a fractional
// Bio tick.
func (Scholar) TotalPotency(c Cadence, opts Options) float64 {
	gcd := c.GCD()
	dot := c.DoTScalar()

	result := float64(cycleMinutes * energyDrainPotency * opts.BurstPerMinute)

	casts, roundedUp, rem := fillerCasts(gcd, opts.CasterTax)
	result += refreshesPerCycle*casts*broilPotency + extraBroilsPerCycle*broilPotency + ruinIIPerCycle*ruinIIPotency
	if roundedUp {
		result += refreshesPerCycle * bioTicksPerRefresh * dot * bioPotency
	} else {
		result += refreshesPerCycle * (bioTicksPerRefresh - 1) * dot * bioPotency
		result += refreshesPerCycle * ((bioTickSeconds - rem) / bioTickSeconds) * dot * bioPotency
	}

	result -= float64(cycleMinutes * opts.FillerCastsOmitted * broilPotency)
	return result
}

// MaxFillerCastsOmitted returns how many Broils per minute can be dropped
// before the cycle runs out of filler: every cycle Broil, including the extra
// ones, spread over the cycle's minutes.
func (Scholar) MaxFillerCastsOmitted(c Cadence, castTax float64) int {
	casts, _, _ := fillerCasts(c.GCD(), castTax)
	return (refreshesPerCycle*int(casts) + extraBroilsPerCycle) / cycleMinutes
}

// PPS returns potency per second over one cycle.
func (s Scholar) PPS(c Cadence, opts Options) float64 {
	return s.TotalPotency(c, opts) / s.CycleDuration(c, opts.CasterTax)
}

// TotalPotencyOverWindow estimates potency over an arbitrary fight length.
// Energy Drains in a final partial minute are counted as lost.
func (Scholar) TotalPotencyOverWindow(c Cadence, seconds, castTax float64) float64 {
	gcd := c.GCD()

	// 3 Energy Drains every 60s, 3 more every 180s.
	drains := 3*math.Ceil((seconds-10)/60) + 3*math.Ceil((seconds-20)/180)
	// One Ruin II per Chain Stratagem, three per Dissipation; every 360s they overlap.
	ruins := math.Ceil(seconds/120) + 3*math.Ceil(seconds/180) - math.Ceil(seconds/360)
	bios := math.Ceil(seconds / bioWindow)
	swifted := 1.0
	if seconds > bioWindow {
		swifted = math.Floor(bios / 2)
	}

	broilBudget := seconds - gcd*(ruins+swifted+bios)
	broils := math.Floor(broilBudget / (gcd + castTax))
	ticks := math.Floor(seconds / bioTickSeconds)

	return broilPotency*broils + ruins*ruinIIPotency + swifted*broilPotency +
		bioPotency*c.DoTScalar()*ticks + energyDrainPotency*drains
}
