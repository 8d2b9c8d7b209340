package fingerprint

// Locus is a closed interval [Start, Stop] on a named reference
// sequence, with Start <= Stop. Loci are values; once a locus is part
// of a reported record it is never mutated.
type Locus struct {
	Reference string
	Start     int
	Stop      int
}

// Overlaps reports whether the two loci share at least one position.
// Boundaries are inclusive.
func (l Locus) Overlaps(o Locus) bool {
	return l.Reference == o.Reference && l.Start <= o.Stop && o.Start <= l.Stop
}

// Contains reports whether o lies entirely within l.
func (l Locus) Contains(o Locus) bool {
	return l.Reference == o.Reference && l.Start <= o.Start && o.Stop <= l.Stop
}

// DistanceTo returns the number of bases separating the loci, or zero
// when they overlap. Loci on different references are infinitely far
// apart; callers never compare across references.
func (l Locus) DistanceTo(o Locus) int {
	if o.Start > l.Stop {
		return o.Start - l.Stop
	}
	if l.Start > o.Stop {
		return l.Start - o.Stop
	}
	return 0
}

// union returns the smallest locus covering both l and o.
func (l Locus) union(o Locus) Locus {
	u := l
	if o.Start < u.Start {
		u.Start = o.Start
	}
	if o.Stop > u.Stop {
		u.Stop = o.Stop
	}
	return u
}
