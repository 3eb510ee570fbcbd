package stat

import "math"

// GCDSeconds returns the global cooldown in seconds produced by a speed value,
// truncated to hundredths:
//
//	floor(floor((1000 - points) * 2500 / 1000) / 10) / 100
//
// where points is the speed multiplier contribution.
func GCDSeconds(speed Stat) float64 {
	base := DescriptorFor(GCD).Base
	precision := DescriptorFor(Precision).Base
	ms := FloorDiv((precision-speed.Points())*base, precision)
	centis := FloorDiv(ms, 10)
	return float64(centis) / 100
}

// DoTScalar returns the damage-over-time tick multiplier granted by speed.
func DoTScalar(speed Stat) float64 {
	precision := float64(DescriptorFor(Precision).Base)
	return (precision + speed.Multiplier()) / precision
}

// Apply scales damage by (1000 + multiplier) / 1000 and floors the result.
func Apply(damage int64, multiplier float64) int64 {
	precision := float64(DescriptorFor(Precision).Base)
	return int64(math.Floor(float64(damage) * ((precision + multiplier) / precision)))
}
