package cvscaler

import "github.com/tphakala/go-cv-scaler/internal/mathutil"

// modulated combines a pot with its CV input and clamps to [0, 1].
func (s *Scaler) modulated(pot, cv Channel) float32 {
	return mathutil.Clamp01(s.combined(pot, cv))
}

func (s *Scaler) combined(pot, cv Channel) float32 {
	return s.smoothed[pot] + cvModulationDepth*s.smoothed[cv]
}

// remapDryWet recenters the combined dry/wet control so 0.5 stays 0.5 while
// both ends saturate slightly before the knob's end stops.
func remapDryWet(x float32) float32 {
	return mathutil.Clamp01(float32(dryWetPreClamp(x)))
}

// dryWetPreClamp is the affine part of the dry/wet remap. It is evaluated in
// float64 so the midpoint maps to exactly 0.5.
func dryWetPreClamp(x float32) float64 {
	return float64(x)*dryWetGain - dryWetOffset
}

// meterTaper is the squared taper applied to the level pot.
func meterTaper(raw float32) float32 {
	v := 1 - mathutil.Clamp01(raw)
	return v * v
}

// derive fills the pot+CV parameters of p from the smoothed state.
func (s *Scaler) derive(p *Parameters) {
	p.Position = s.modulated(PotPosition, CVPosition)
	p.Texture = s.modulated(PotTexture, CVTexture)
	p.Density = s.modulated(PotDensity, CVDensity)
	p.Size = s.modulated(PotSize, CVSize)
	p.DryWet = remapDryWet(s.combined(PotDryWet, CVDryWet))
	p.Reverb = s.modulated(PotReverb, CVReverb)
	p.Feedback = s.modulated(PotFeedback, CVFeedback)
	p.StereoSpread = s.modulated(PotSpread, CVSpread)

	s.meterLevel = meterTaper(s.smoothed[PotLevel])
}
