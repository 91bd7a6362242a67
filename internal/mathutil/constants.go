package mathutil

// Quantized pitch table geometry
const (
	// PitchTableSize is the interpolation size of the pitch table; the table
	// holds one extra guard entry so index 1.0 lands on a real sample.
	PitchTableSize = 1024

	pitchTableEntries = PitchTableSize + 1
)

// Pitch knob travel in semitones
const (
	// PitchRangeSemitones is the half-span of the pitch knob: the table maps
	// [0, 1] onto [-PitchRangeSemitones, +PitchRangeSemitones].
	PitchRangeSemitones = 48.0

	pitchSpanSemitones = 2 * PitchRangeSemitones
)

// Notch shaping
const (
	// notchGain shapes the fractional semitone f in [-0.5, 0.5] as
	// notchGain*f^3. The value keeps the curve continuous at ±0.5 while
	// flattening it around every integer semitone.
	notchGain = 4.0
)
