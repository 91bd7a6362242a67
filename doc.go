// Package cvscaler provides the control-signal conditioning layer of a
// granular Eurorack module in pure Go.
//
// Once per audio block it turns raw converter samples (knob positions,
// control voltages and gate lines) into a calibrated, smoothed [Parameters]
// record for the synthesis engine. The per-block path is single pass, never
// allocates and never blocks.
//
// # Quick Start
//
//	calibration := cvscaler.DefaultCalibration()
//	s, err := cvscaler.NewScaler(cvscaler.DefaultConfig(), cvscaler.Drivers{
//	    CV:    cvBank,
//	    Pots:  potBank,
//	    Gates: gateInputs,
//	}, &calibration)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var p cvscaler.Parameters
//	for range blocks {
//	    s.Read(&p)
//	    engine.Process(&p)
//	}
//
// # Conditioning Chain
//
// Every [Channel] passes through a fixed [Transformation]:
//
//	raw -> [flip] -> [- offset] -> one-pole smoothing -> smoothed state
//
// CV channels are read from an asynchronous converter with one block of
// latency: the conversion started at the end of block N is consumed by block
// N+1. Pot and CV pairs are then combined as pot + 2*cv and clamped to [0, 1].
//
// # Pitch
//
// The pitch knob (plus pitch CV) is mapped through a quantized tuning curve.
// The V/oct input is tracked as a note with half-semitone hysteresis, or
// passed through a slow dejitter filter for noisy sources ([ModeVOctDejitter]).
// The dejittered values are written back into the smoothed state, so the
// pitch knob's own smoothing cascades with the dejitter average.
// In [ModeVOctQuantized] the note is rounded to whole semitones, with the
// pitch knob biasing the rounding upward, and replaces the knob curve
// entirely. The rounded note is kept as the hysteresis memory. The result is
// clamped to [MinPitch, MaxPitch].
//
// # Gates
//
// Freeze follows its jack immediately. Capture and gate are delayed by
// [GateLatency] blocks to stay aligned with the rest of the control path.
// [Scaler.CaptureFromUI] injects a one-shot capture that is delivered on the
// next block.
//
// # Calibration
//
// [Scaler.CalibrateOffsets] zeroes every channel against a known reference.
// [Scaler.CalibrateC1] and [Scaler.CalibrateC3] fit the V/oct input from the
// raw converter readings of two notes 24 semitones apart; implausible readings are rejected and the stored
// [CalibrationData] is left unchanged.
//
// # Thread Safety
//
// [Scaler.Read] belongs to the audio block goroutine. Mode setters and
// [Scaler.CaptureFromUI] are safe from any goroutine. Calibration must not
// overlap Read; [App] queues it into the block callback for UI callers and
// drops a queued call whose context was cancelled before it ran.
package cvscaler
