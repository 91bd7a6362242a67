package cvscaler

import (
	"github.com/tphakala/go-cv-scaler/internal/filter"
	"github.com/tphakala/go-cv-scaler/internal/mathutil"
)

// PitchInputs are the conditioned readings the pitch tracker consumes.
type PitchInputs struct {
	// Pot is the smoothed (optionally dejittered) pitch knob.
	Pot float32

	// CV is the smoothed pitch CV, centered on zero when unpatched.
	CV float32

	// VOct is the smoothed (optionally dejittered) V/oct input.
	VOct float32

	// Reading is VOct in the converter's own polarity, the domain the
	// two-point calibration is fitted in.
	Reading float32
}

// PitchTracker turns the pitch knob, pitch CV and V/oct input into a final
// transposition. Its only state is the tracked note, which carries the
// hysteresis memory from block to block.
type PitchTracker struct {
	note        float32
	calibration *CalibrationData
}

// NewPitchTracker creates a tracker. calibration is only read in
// ModeCalibratedPitch and may be nil otherwise.
func NewPitchTracker(calibration *CalibrationData) *PitchTracker {
	return &PitchTracker{calibration: calibration}
}

// Process runs one block of pitch tracking and returns the clamped pitch in
// semitones.
func (t *PitchTracker) Process(in PitchInputs, modes Mode) float32 {
	pitch := knobPitch(in, modes)
	note := t.track(in, modes)

	if modes.Has(ModeVOctQuantized) {
		// The rounded note becomes the hysteresis memory for the next block.
		t.note = quantizeNote(note, in.Pot)
		pitch = t.note
	} else {
		pitch += note
	}

	return mathutil.Clamp(pitch, MinPitch, MaxPitch)
}

// Note returns the tracked V/oct note in semitones.
func (t *PitchTracker) Note() float32 {
	return t.note
}

// Reset clears the tracked note.
func (t *PitchTracker) Reset() {
	t.note = 0
}

// knobPitch combines the pitch knob and pitch CV and maps the result through
// the quantized pitch curve.
func knobPitch(in PitchInputs, modes Mode) float32 {
	combined := in.Pot
	cv := cvModulationDepth * in.CV
	if modes.Has(ModePitchCV) && mathutil.Abs(cv) > pitchCVDeadband {
		combined += cv
	}
	return mathutil.PitchFromKnob(mathutil.Clamp01(combined))
}

// track updates and returns the V/oct note.
func (t *PitchTracker) track(in PitchInputs, modes Mode) float32 {
	if !modes.Has(ModeVOctCV) || !(in.VOct >= voctDeadband) {
		t.note = 0
		return 0
	}

	var target float32
	if modes.Has(ModeCalibratedPitch) && t.calibration != nil {
		target = t.calibration.PitchOffset + t.calibration.PitchScale*in.Reading
	} else {
		target = in.VOct*voctSpanSemitones - voctCenterSemitones
	}

	switch {
	case modes.Has(ModeVOctDejitter):
		// Already filtered upstream.
		t.note = target
	case mathutil.Abs(target-t.note) > noteSnapThreshold:
		t.note = target
	default:
		filter.OnePole(&t.note, target, noteSlewCoefficient)
	}

	return t.note
}

// quantizeNote truncates note to a whole semitone with a rounding threshold
// biased by the pitch knob. At pot=0 it rounds to nearest. Raising the knob
// biases rounding upward: positive notes step up sooner and negative notes are
// held toward zero longer, until at pot=1 every note rounds up.
func quantizeNote(note, pot float32) float32 {
	bias := pot * quantizeBias
	if note < 0 {
		return float32(int32(note - (quantizeBias - bias)))
	}
	return float32(int32(note + (quantizeBias + bias)))
}
