package cvscaler

// CalibrationData is the persisted calibration record. Its lifetime belongs
// to the settings store; the scaler reads it every block and writes it only
// from the calibration routines.
type CalibrationData struct {
	// Offset is the zero offset of every channel, in flipped polarity.
	Offset [NumChannels]float32

	// PitchOffset and PitchScale are the V/oct linear fit:
	// note = PitchOffset + PitchScale*reading.
	PitchOffset float32
	PitchScale  float32
}

// DefaultCalibration returns an uncalibrated record: zero offsets and the
// nominal five-octave V/oct fit.
func DefaultCalibration() CalibrationData {
	return CalibrationData{
		PitchOffset: defaultPitchOffset,
		PitchScale:  defaultPitchScale,
	}
}

// FitVOct computes the V/oct fit from readings c1 and c2 taken 24 semitones
// apart, c1 being the lower note. The fit is rejected unless c2-c1 lies
// strictly within (-0.5, 0).
func FitVOct(c1, c2 float32) (scale, offset float32, ok bool) {
	delta := c2 - c1
	if !(delta > minCalibrationDelta && delta < maxCalibrationDelta) {
		return 0, 0, false
	}

	scale = calibrationSpanSemitones / delta
	offset = calibrationBaseSemitone - scale*c1
	return scale, offset, true
}

// CalibrateOffsets stores every channel's current conditioned reading as its
// zero offset. The caller must have a zero signal applied to every input.
// Must not run concurrently with Read.
func (s *Scaler) CalibrateOffsets() {
	for ch := range NumChannels {
		s.calibration.Offset[ch] = s.table[ch].apply(s.adc[ch], 0)
	}
	s.logger.Info("offsets calibrated", "channels", int(NumChannels))
}

// CalibrateC1 caches the raw V/oct converter reading for the lower reference
// note. Must not run concurrently with Read.
func (s *Scaler) CalibrateC1() {
	s.voctC1 = s.adc[CVVOct]
	s.logger.Info("v/oct first point captured", "reading", s.voctC1)
}

// CalibrateC3 reads the upper reference note, two octaves above the one
// given to CalibrateC1, and commits the V/oct fit. It reports false and leaves
// the calibration untouched when the readings are implausible.
// Must not run concurrently with Read.
func (s *Scaler) CalibrateC3() bool {
	c2 := s.adc[CVVOct]
	scale, offset, ok := FitVOct(s.voctC1, c2)
	if !ok {
		s.logger.Warn("v/oct calibration rejected", "c1", s.voctC1, "c2", c2, "delta", c2-s.voctC1)
		return false
	}

	s.calibration.PitchScale = scale
	s.calibration.PitchOffset = offset
	s.logger.Info("v/oct calibrated", "scale", scale, "offset", offset)
	return true
}

// voctReading converts a smoothed V/oct value back to converter polarity, the
// domain the fit is computed in.
func (s *Scaler) voctReading(v float32) float32 {
	if s.table[CVVOct].Flip {
		return 1 - v
	}
	return v
}
