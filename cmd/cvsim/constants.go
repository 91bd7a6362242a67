package main

const (
	// Simulation defaults
	defaultBlocks = 4000

	// Parameter WAV format
	wavBitDepth  = 16
	wavPCMFormat = 1
	maxInt16     = 32767.0

	// Pitch is written to the parameter WAV as (pitch - MinPitch) / pitchSpan.
	pitchSpan = 96.0

	// Calibration event names
	calibrateOffsets = "offsets"
	calibrateC1      = "c1"
	calibrateC3      = "c3"
)
