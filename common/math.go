package common

// FixedStep is the simulation tick in seconds.
const FixedStep = 1.0 / 60.0

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
