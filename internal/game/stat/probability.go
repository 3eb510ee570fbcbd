package stat

// probabilityConstants holds the (factor, scalar) pair used to turn a stat into
// a chance of occurrence. These differ from the multiplier constants.
type probabilityConstants struct {
	factor int
	scalar int
}

var probabilityTable = map[Kind]probabilityConstants{
	CriticalHit: {factor: 200, scalar: 50},
	DirectHit:   {factor: 550, scalar: 0},
}

// identityProbability is used for kinds without a probability contribution.
var identityProbability = probabilityConstants{factor: 1, scalar: 0}

func probabilityFor(k Kind) probabilityConstants {
	if pc, ok := probabilityTable[k]; ok {
		return pc
	}
	return identityProbability
}

// Probability returns the chance in [0,1] (unclamped) that the stat's effect
// occurs: (pFactor*(value-Base) // 3300 + pScalar) / 1000.
func Probability(d Descriptor, value int) float64 {
	pc := probabilityFor(d.Kind)
	points := FloorDiv(pc.factor*(value-d.Base), substatDivisor) + pc.scalar
	return float64(points) / float64(DescriptorFor(Precision).Base)
}

// ProbabilisticStat is a Stat that also converts into a chance of occurrence.
type ProbabilisticStat struct {
	Stat
}

// NewProbabilistic returns a ProbabilisticStat of kind k.
func NewProbabilistic(k Kind, value int) ProbabilisticStat {
	return ProbabilisticStat{Stat: New(k, value)}
}

// Probability returns the chance that s occurs on a given hit.
func (s ProbabilisticStat) Probability() float64 {
	return Probability(s.Descriptor(), s.Value)
}
