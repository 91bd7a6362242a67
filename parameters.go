package cvscaler

import "github.com/tphakala/go-cv-scaler/internal/mathutil"

// Parameters is the control set handed to the granular engine once per block.
// Read populates it in place; every scalar is clamped before Read returns.
type Parameters struct {
	Position     float32 // [0, 1]
	Texture      float32 // [0, 1]
	Density      float32 // [0, 1]
	Size         float32 // [0, 1]
	DryWet       float32 // [0, 1]
	Reverb       float32 // [0, 1]
	Feedback     float32 // [0, 1]
	StereoSpread float32 // [0, 1]

	// Pitch is the transposition in semitones, [MinPitch, MaxPitch].
	Pitch float32

	// Freeze follows the freeze jack without delay.
	Freeze bool

	// Capture is a single-block trigger: a delayed capture rising edge or a
	// capture requested from the UI.
	Capture bool

	// Gate is the delayed capture jack level.
	Gate bool

	// Legacy carries the controls for the alternate slicing playback mode.
	Legacy LegacyParameters
}

// LegacyParameters is the control view of the alternate slicing mode. It
// reuses the main controls under that mode's names, except for the slice
// controls and Pitch, which read the smoothed inputs directly. Every field is
// in [0, 1].
type LegacyParameters struct {
	SliceSelection  float32 // texture CV alone
	SliceModulation float32 // texture pot alone
	SizeModulation  float32 // density
	Probability     float32 // dry/wet
	ClockDivider    float32 // stereo spread
	PitchMode       float32 // feedback
	Distortion      float32 // reverb

	// Pitch is the pitch pot plus the V/oct input, recentered on the V/oct
	// midpoint. It is a knob position, not a semitone value.
	Pitch float32
}

// mirror fills the legacy view from the derived parameters and the smoothed
// state.
func (s *Scaler) mirror(p *Parameters) {
	p.Legacy = LegacyParameters{
		SliceSelection:  mathutil.Clamp01(s.smoothed[CVTexture]),
		SliceModulation: mathutil.Clamp01(s.smoothed[PotTexture]),
		SizeModulation:  p.Density,
		Probability:     p.DryWet,
		ClockDivider:    p.StereoSpread,
		PitchMode:       p.Feedback,
		Distortion:      p.Reverb,
		Pitch:           mathutil.Clamp01(s.smoothed[PotPitch] + s.smoothed[CVVOct] - legacyPitchCenter),
	}
}
