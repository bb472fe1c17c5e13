package Setups

// twoMedia switches from the first value to the second at x = split
func twoMedia(split, first, second float64) func(x float64) float64 {
	return func(x float64) float64 {
		if x < split {
			return first
		}
		return second
	}
}

// box is an axis aligned object, bounds inclusive
type box struct {
	center, size []float64
}

func (b box) contains(pos ...float64) bool {
	for n, p := range pos {
		half := b.size[n] / 2.
		if p < b.center[n]-half || p > b.center[n]+half {
			return false
		}
	}
	return true
}

// pick returns inside when pos falls in the box, medium otherwise
func (b box) pick(medium, inside float64, pos ...float64) float64 {
	if b.contains(pos...) {
		return inside
	}
	return medium
}
