// Package mathutil provides the table lookups and clamping helpers used by the
// control-rate parameter path.
package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// QuantizedPitch is the pitch knob tuning curve in semitones, sampled at
// PitchTableSize+1 evenly spaced knob positions. Around every integer semitone
// the curve flattens into a notch so the knob settles on in-tune values while
// remaining continuous and monotonic across its whole travel.
var QuantizedPitch = buildQuantizedPitch()

func buildQuantizedPitch() [pitchTableEntries]float32 {
	positions := make([]float64, pitchTableEntries)
	floats.Span(positions, 0, 1)

	var table [pitchTableEntries]float32
	for i, x := range positions {
		table[i] = float32(quantizedPitchCurve(x))
	}
	return table
}

// quantizedPitchCurve maps a knob position in [0, 1] to semitones.
func quantizedPitchCurve(x float64) float64 {
	semitones := x*pitchSpanSemitones - PitchRangeSemitones
	whole := math.Round(semitones)
	frac := semitones - whole
	return whole + notchGain*frac*frac*frac
}

// Interpolate reads table at a fractional index in [0, 1] with linear
// interpolation, scaling index by size. Indices outside [0, 1] are clamped to
// the table ends.
func Interpolate(table []float32, index, size float32) float32 {
	if !(index > 0) {
		return table[0]
	}

	scaled := index * size
	integral := int(scaled)
	if integral >= len(table)-1 {
		return table[len(table)-1]
	}

	fractional := scaled - float32(integral)
	a := table[integral]
	b := table[integral+1]
	return a + (b-a)*fractional
}

// PitchFromKnob maps a knob position in [0, 1] through QuantizedPitch.
func PitchFromKnob(position float32) float32 {
	return Interpolate(QuantizedPitch[:], position, PitchTableSize)
}
