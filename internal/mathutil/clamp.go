package mathutil

// Clamp limits x to [lo, hi]. A NaN input yields lo, so a corrupted sample can
// never leave the range.
func Clamp(x, lo, hi float32) float32 {
	if !(x > lo) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
