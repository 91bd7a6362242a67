package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cvscaler "github.com/tphakala/go-cv-scaler"
)

func runScenario(t *testing.T, yaml string, limit int) *simulation {
	t.Helper()

	sc, err := ParseScenario([]byte(yaml))
	require.NoError(t, err)
	cfg, err := sc.config()
	require.NoError(t, err)

	cal := cvscaler.DefaultCalibration()
	sim, err := newSimulation(cfg, &cal, newScenarioInputs(sc), sc.Events, false)
	require.NoError(t, err)
	require.NoError(t, sim.run(limit))
	return sim
}

func last(s []float32) float32 {
	return s[len(s)-1]
}

func TestSimulation_GatesAndCapture(t *testing.T) {
	sim := runScenario(t, `
blocks: 600
flip_cv: false
inputs:
  pot-dry-wet: {value: 0.5}
events:
  - {block: 100, capture: true}
  - {block: 200, gate: true}
  - {block: 204, gate: false}
  - {block: 300, freeze: true}
  - {block: 310, freeze: false}
`, 0)

	assert.Equal(t, 600, sim.rec.len())
	assert.Equal(t, 2, sim.rec.captures, "one UI capture plus one delayed gate edge")
	assert.Equal(t, 4, sim.rec.gates)
	assert.Equal(t, 10, sim.rec.freezes)
	assert.InDelta(t, 0.5, last(sim.rec.streams[streamDryWet]), 1e-4)
	assert.Equal(t, uint64(600), sim.app.Blocks())
}

func TestSimulation_QuantizedPitch(t *testing.T) {
	// 31/60 on the V/oct input is seven semitones.
	sim := runScenario(t, `
blocks: 300
flip_cv: false
modes: voct-cv|quantized
inputs:
  cv-voct: {value: 0.516666667}
`, 0)

	assert.InDelta(t, 7, last(sim.rec.streams[streamPitch]), 1e-6)
}

// TestSimulation_QuantizedPitchKnobBias raises the pitch knob to the top,
// which rounds every tracked note up.
func TestSimulation_QuantizedPitchKnobBias(t *testing.T) {
	// 30.3/60 on the V/oct input is 6.3 semitones, which rounds down to 6
	// with the knob at zero.
	sim := runScenario(t, `
blocks: 1500
flip_cv: false
modes: voct-cv|quantized
inputs:
  cv-voct: {value: 0.505}
  pot-pitch: {value: 1}
`, 0)

	assert.InDelta(t, 7, last(sim.rec.streams[streamPitch]), 1e-6)
}

func TestSimulation_ModeEvent(t *testing.T) {
	sim := runScenario(t, `
blocks: 400
flip_cv: false
modes: voct-cv
inputs:
  cv-voct: {value: 0.516666667}
events:
  - {block: 200, modes: none}
`, 0)

	pitch := sim.rec.streams[streamPitch]
	assert.InDelta(t, -41, pitch[199], 1e-2, "knob at zero plus seven tracked semitones")
	assert.InDelta(t, -48, last(pitch), 1e-4)
	assert.Equal(t, cvscaler.Mode(0), sim.app.Scaler().Modes())
}

func TestSimulation_Calibration(t *testing.T) {
	sim := runScenario(t, `
blocks: 300
inputs:
  cv-voct: {value: 0.6488}
events:
  - {block: 100, calibrate: c1}
  - {block: 100, set: {cv-voct: 0.3640}}
  - {block: 200, calibrate: c3}
`, 0)

	cal := sim.app.Scaler().Calibration()
	assert.Zero(t, sim.calibrationRejects)
	assert.InDelta(t, -84.27, cal.PitchScale, 0.05)
}

func TestSimulation_CalibrationRejected(t *testing.T) {
	sim := runScenario(t, `
blocks: 300
inputs:
  cv-voct: {value: 0.4}
events:
  - {block: 100, calibrate: c1}
  - {block: 100, set: {cv-voct: 0.5}}
  - {block: 200, calibrate: c3}
`, 0)

	assert.Equal(t, 1, sim.calibrationRejects)
	assert.Equal(t, cvscaler.DefaultCalibration(), *sim.app.Scaler().Calibration())
}

func TestSimulation_Limit(t *testing.T) {
	sim := runScenario(t, "blocks: 1000\n", 50)
	assert.Equal(t, 50, sim.rec.len())
}

// =============================================================================
// WAV input and output
// =============================================================================

// writeTestWAV writes a 16-bit recording where every frame of channel c
// holds values[c].
func writeTestWAV(t *testing.T, path string, frames int, values ...int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	channels := len(values)
	enc := wav.NewEncoder(f, 32000, 16, channels, 1)
	data := make([]int, frames*channels)
	for i := range frames {
		copy(data[i*channels:], values)
	}
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: 32000},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
}

func TestOpenWAVInputs_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := openWAVInputs(filepath.Join(dir, "missing.wav"), nil, 32, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")

	invalid := filepath.Join(dir, "invalid.wav")
	require.NoError(t, os.WriteFile(invalid, []byte("not a wav file"), 0o644))
	_, err = openWAVInputs(invalid, nil, 32, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")

	mono := filepath.Join(dir, "mono.wav")
	writeTestWAV(t, mono, 64, 0)
	_, err = openWAVInputs(mono, []string{"cv-voct", "cv-pitch"}, 32, false)
	require.Error(t, err)

	_, err = openWAVInputs(mono, []string{"cv-volume"}, 32, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown input")
}

func TestSimulation_WAVInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.wav")
	// 16383 is three quarters of the way up, -16383 one quarter.
	writeTestWAV(t, path, 400*32, 16383, -16383)

	in, err := openWAVInputs(path, []string{"pot-position", "pot-reverb"}, 32, false)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	cfg := cvscaler.DefaultConfig()
	cfg.FlipCV = false
	cal := cvscaler.DefaultCalibration()
	sim, err := newSimulation(cfg, &cal, in, nil, false)
	require.NoError(t, err)
	require.NoError(t, sim.run(0))

	assert.Equal(t, 400, sim.rec.len())
	assert.InDelta(t, 0.75, last(sim.rec.streams[streamPosition]), 1e-3)
	assert.InDelta(t, 0.25, last(sim.rec.streams[streamReverb]), 1e-3)
}

func TestWriteParameterWAV(t *testing.T) {
	// The pitch pot settles slowest, at 1% per block.
	sim := runScenario(t, `
blocks: 1500
flip_cv: false
inputs:
  pot-position: {value: 0.75}
  pot-pitch: {value: 0.5}
`, 0)

	path := filepath.Join(t.TempDir(), "params.wav")
	require.NoError(t, writeParameterWAV(path, 1000, sim.rec))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, numStreams, buf.Format.NumChannels)
	assert.Equal(t, 1000, buf.Format.SampleRate)
	require.Len(t, buf.Data, 1500*numStreams)

	lastFrame := buf.Data[1499*numStreams:]
	assert.InDelta(t, 16383, lastFrame[streamPosition], 20)
	assert.InDelta(t, 0, lastFrame[streamPitch], 20, "pitch 0 sits mid-scale")
}

func TestWriteParameterWAV_Empty(t *testing.T) {
	err := writeParameterWAV(filepath.Join(t.TempDir(), "empty.wav"), 1000, &recorder{})
	require.Error(t, err)
}
