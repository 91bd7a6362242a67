package main

import (
	"log"

	cvscaler "github.com/tphakala/go-cv-scaler"
)

// Parameter streams captured by the recorder, in WAV channel order.
const (
	streamPosition = iota
	streamDensity
	streamSize
	streamTexture
	streamDryWet
	streamReverb
	streamFeedback
	streamSpread
	streamPitch
	numStreams
)

var streamNames = [numStreams]string{
	streamPosition: "position",
	streamDensity:  "density",
	streamSize:     "size",
	streamTexture:  "texture",
	streamDryWet:   "dry/wet",
	streamReverb:   "reverb",
	streamFeedback: "feedback",
	streamSpread:   "spread",
	streamPitch:    "pitch",
}

// inputSource supplies the jack values for each block.
type inputSource interface {
	Next(block int, values *[cvscaler.NumChannels]float32) (bool, error)
	Close() error
}

// simCodec stands in for the audio codec: Start only records the block
// callback, which the simulation then calls itself.
type simCodec struct {
	sampleRate int
	blockSize  int
	block      func()
}

func (c *simCodec) Init(sampleRate, blockSize int) error {
	c.sampleRate, c.blockSize = sampleRate, blockSize
	return nil
}

func (c *simCodec) Start(block func()) error {
	c.block = block
	return nil
}

// recorder is the engine: it keeps every parameter the scaler produced.
type recorder struct {
	streams  [numStreams][]float32
	captures int
	gates    int
	freezes  int
}

func (r *recorder) Process(p *cvscaler.Parameters) {
	r.streams[streamPosition] = append(r.streams[streamPosition], p.Position)
	r.streams[streamDensity] = append(r.streams[streamDensity], p.Density)
	r.streams[streamSize] = append(r.streams[streamSize], p.Size)
	r.streams[streamTexture] = append(r.streams[streamTexture], p.Texture)
	r.streams[streamDryWet] = append(r.streams[streamDryWet], p.DryWet)
	r.streams[streamReverb] = append(r.streams[streamReverb], p.Reverb)
	r.streams[streamFeedback] = append(r.streams[streamFeedback], p.Feedback)
	r.streams[streamSpread] = append(r.streams[streamSpread], p.StereoSpread)
	r.streams[streamPitch] = append(r.streams[streamPitch], p.Pitch)

	if p.Capture {
		r.captures++
	}
	if p.Gate {
		r.gates++
	}
	if p.Freeze {
		r.freezes++
	}
}

func (r *recorder) len() int {
	return len(r.streams[streamPosition])
}

// simulation runs an App against scripted inputs and events.
type simulation struct {
	app    *cvscaler.App
	codec  *simCodec
	rec    *recorder
	rig    *rig
	input  inputSource
	events []Event

	// pinned holds inputs forced to a constant by "set" events.
	pinned map[cvscaler.Channel]float32

	calibrationRejects int
	verbose            bool
}

func newSimulation(config cvscaler.Config, cal *cvscaler.CalibrationData, input inputSource, events []Event, verbose bool) (*simulation, error) {
	s := &simulation{
		codec:   &simCodec{},
		rec:     &recorder{},
		rig:     newRig(),
		input:   input,
		events:  events,
		pinned:  make(map[cvscaler.Channel]float32),
		verbose: verbose,
	}

	app, err := cvscaler.NewApp(config, s.rig.drivers(), cal, s.codec, s.rec)
	if err != nil {
		return nil, err
	}
	s.app = app
	return s, nil
}

// run initializes the app and steps blocks until the input is exhausted or
// limit blocks have run. A limit of zero means no limit.
func (s *simulation) run(limit int) error {
	if err := s.app.Init(); err != nil {
		return err
	}
	if err := s.app.Start(); err != nil {
		return err
	}

	next := 0
	for block := 0; limit == 0 || block < limit; block++ {
		ok, err := s.input.Next(block, &s.rig.values)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		for next < len(s.events) && s.events[next].Block <= block {
			s.apply(&s.events[next])
			next++
		}
		for ch, v := range s.pinned {
			s.rig.values[ch] = v
		}

		s.codec.block()
	}
	return nil
}

// apply performs one event. Blocks run on this goroutine, so calibration is
// called directly between two of them.
func (s *simulation) apply(e *Event) {
	scaler := s.app.Scaler()

	if e.Modes != nil {
		scaler.SetModes(e.modes)
		s.logf("block %d: modes %s", e.Block, e.modes)
	}
	if e.Capture {
		scaler.CaptureFromUI()
	}
	if e.Freeze != nil {
		s.rig.gates.freezeLevel = *e.Freeze
	}
	if e.Gate != nil {
		s.rig.gates.captureLevel = *e.Gate
	}
	for ch, v := range e.set {
		s.pinned[ch] = v
	}

	switch e.Calibrate {
	case calibrateOffsets:
		scaler.CalibrateOffsets()
		s.logf("block %d: offsets calibrated", e.Block)
	case calibrateC1:
		scaler.CalibrateC1()
	case calibrateC3:
		if scaler.CalibrateC3() {
			cal := scaler.Calibration()
			s.logf("block %d: v/oct scale %.3f offset %.3f", e.Block, cal.PitchScale, cal.PitchOffset)
		} else {
			s.calibrationRejects++
			s.logf("block %d: v/oct calibration rejected", e.Block)
		}
	}
}

func (s *simulation) logf(format string, args ...any) {
	if s.verbose {
		log.Printf(format, args...)
	}
}
