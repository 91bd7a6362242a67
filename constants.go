package cvscaler

// Parameter derivation constants
const (
	cvModulationDepth = 2.0 // CV contributes twice its value on top of the pot

	// Dry/wet remap so the knob's midpoint lands exactly on 0.5 after clamping.
	dryWetGain   = 1.05
	dryWetOffset = 0.025
)

// Pitch tracking constants
const (
	// MinPitch and MaxPitch bound Parameters.Pitch, in semitones.
	MinPitch = -48.0
	MaxPitch = 48.0

	pitchCVDeadband = 0.004 // |2*pitch CV| at or below this counts as unpatched
	voctDeadband    = 0.002 // V/oct readings below this count as unpatched

	voctSpanSemitones   = 60.0 // Full-scale V/oct reading spans five octaves
	voctCenterSemitones = 24.0 // Recentering so 0.4 full scale is unison

	noteSnapThreshold   = 0.5 // Jumps beyond half a semitone are real note changes
	noteSlewCoefficient = 0.2 // One-pole coefficient for sub-threshold movement

	quantizeBias = 0.5 // Half-semitone rounding offset, scaled up by the pitch knob
)

// Legacy view constants
const (
	legacyPitchCenter = 0.5 // V/oct reading subtracted from the legacy pitch sum
)

// Gate pipeline constants
const (
	// GateLatency is the number of blocks capture and gate are held back to
	// line up with the other control paths.
	GateLatency = 5
)

// Calibration constants
const (
	calibrationSpanSemitones = 24.0 // Distance between the two V/oct reference notes
	calibrationBaseSemitone  = 12.0 // Note assigned to the first reference point

	// A plausible two-point fit reads lower at the higher note, by less than
	// half of full scale.
	minCalibrationDelta = -0.5
	maxCalibrationDelta = 0.0

	// Uncalibrated V/oct fit, equivalent to the fixed 60-semitone map on a
	// flipped channel.
	defaultPitchScale  = -voctSpanSemitones
	defaultPitchOffset = voctSpanSemitones - voctCenterSemitones
)

// Diagnostics constants
const (
	adcValueFullScale = 255 // ADCValue truncates to 8 bits
)

// Configuration defaults and limits
const (
	defaultSampleRate = 32000
	defaultBlockSize  = 32

	maxBlockSize = 4096
)
