package cvscaler

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/tphakala/go-cv-scaler/internal/filter"
	"github.com/tphakala/go-cv-scaler/internal/mathutil"
	"github.com/tphakala/go-cv-scaler/internal/pipeline"
)

// dejittered lists the channels the dejitter filter writes back into.
var dejittered = [...]Channel{CVVOct, PotPitch}

// Scaler is the per-block acquisition and conditioning stage. It owns the
// smoothed channel state, the pitch tracker and the gate pipeline.
//
// Read must only be called from the audio block goroutine. The mode setters
// and CaptureFromUI may be called from any goroutine. The calibration
// routines must not overlap Read; see App for a way to run them from the UI.
type Scaler struct {
	config      Config
	logger      *slog.Logger
	table       TransformTable
	calibration *CalibrationData

	cv    *pipeline.Conversion
	pots  PotBank
	gates GateInputs

	adc      [NumChannels]float32 // last raw sample per channel
	smoothed [NumChannels]float32

	// Dejitter state persists across mode toggles.
	dejitter [len(dejittered)]filter.Dejitter

	modes atomic.Uint32

	pitch *PitchTracker
	gate  *GatePipeline

	meterLevel float32
	voctC1     float32
}

// NewScaler validates config, wires the drivers and kicks off the first CV
// conversion so the first Read has data to consume.
func NewScaler(config Config, drivers Drivers, calibration *CalibrationData) (*Scaler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := drivers.validate(); err != nil {
		return nil, err
	}
	if calibration == nil {
		return nil, ErrNilCalibration
	}

	s := &Scaler{
		config:      config,
		logger:      config.logger(),
		table:       NewTransformTable(config.FlipCV),
		calibration: calibration,
		cv:          pipeline.NewConversion(drivers.CV, NumCVChannels),
		pots:        drivers.Pots,
		gates:       drivers.Gates,
		pitch:       NewPitchTracker(calibration),
		gate:        NewGatePipeline(),
	}
	s.modes.Store(uint32(config.Modes))

	if err := s.table.validate(); err != nil {
		return nil, err
	}

	s.cv.Request()
	s.logger.Info("scaler initialized",
		"control_rate_hz", config.ControlRate(),
		"flip_cv", config.FlipCV,
		"modes", config.Modes.String())

	return s, nil
}

// Read runs one block: acquire and smooth every channel, derive the
// parameters, track pitch, fill the legacy view, then run the gate pipeline.
// It never allocates and never blocks.
func (s *Scaler) Read(p *Parameters) {
	modes := s.Modes()

	s.acquire(modes)
	s.derive(p)
	p.Pitch = s.pitch.Process(s.pitchInputs(), modes)
	s.mirror(p)
	s.gate.Process(s.gates, p)

	// Consumed by the next Read.
	s.cv.Request()
}

// acquire scans the pots, latches last block's CV conversion and advances
// every channel's smoothing filter.
func (s *Scaler) acquire(modes Mode) {
	s.pots.Scan()
	s.cv.Consume()

	for ch := range NumChannels {
		var raw float32
		if ch.IsCV() {
			raw = s.cv.Value(ch.bankIndex())
		} else {
			raw = s.pots.Float(ch.bankIndex())
		}
		s.adc[ch] = raw

		t := &s.table[ch]
		filter.OnePole(&s.smoothed[ch], t.apply(raw, s.calibration.Offset[ch]), t.FilterCoefficient)
	}

	if modes.Has(ModeVOctDejitter) {
		// Written back, so the next block's one-pole starts from the average.
		for i, ch := range dejittered {
			s.smoothed[ch] = s.dejitter[i].Process(s.smoothed[ch])
		}
	}
}

func (s *Scaler) pitchInputs() PitchInputs {
	return PitchInputs{
		Pot:     s.smoothed[PotPitch],
		CV:      s.smoothed[CVPitch],
		VOct:    s.smoothed[CVVOct],
		Reading: s.voctReading(s.smoothed[CVVOct]),
	}
}

// Modes returns the current toggles.
func (s *Scaler) Modes() Mode {
	return Mode(s.modes.Load())
}

// SetModes replaces every toggle at once. Takes effect on the next Read.
func (s *Scaler) SetModes(m Mode) {
	s.modes.Store(uint32(m & modeMask))
}

// SetPitchCVUsed toggles ModePitchCV.
func (s *Scaler) SetPitchCVUsed(on bool) { s.setMode(ModePitchCV, on) }

// SetVOctCVUsed toggles ModeVOctCV.
func (s *Scaler) SetVOctCVUsed(on bool) { s.setMode(ModeVOctCV, on) }

// SetVOctCVQuantized toggles ModeVOctQuantized.
func (s *Scaler) SetVOctCVQuantized(on bool) { s.setMode(ModeVOctQuantized, on) }

// SetVOctCVDejittered toggles ModeVOctDejitter.
func (s *Scaler) SetVOctCVDejittered(on bool) { s.setMode(ModeVOctDejitter, on) }

// SetCalibratedPitch toggles ModeCalibratedPitch.
func (s *Scaler) SetCalibratedPitch(on bool) { s.setMode(ModeCalibratedPitch, on) }

func (s *Scaler) setMode(m Mode, on bool) {
	if on {
		s.modes.Or(uint32(m))
	} else {
		s.modes.And(^uint32(m))
	}
}

// CaptureFromUI requests a synthetic capture on the next block.
func (s *Scaler) CaptureFromUI() {
	s.gate.RequestCapture()
}

// MeterLevel returns the squared-taper level derived from the level pot.
func (s *Scaler) MeterLevel() float32 {
	return s.meterLevel
}

// SpreadPot returns the smoothed stereo spread pot, without CV.
func (s *Scaler) SpreadPot() float32 {
	return s.smoothed[PotSpread]
}

// Smoothed returns the smoothed value of ch.
func (s *Scaler) Smoothed(ch Channel) float32 {
	if !ch.Valid() {
		return 0
	}
	return s.smoothed[ch]
}

// ADCValue returns the last raw sample of ch truncated to 8 bits.
func (s *Scaler) ADCValue(ch Channel) uint8 {
	if !ch.Valid() {
		return 0
	}
	return uint8(mathutil.Clamp01(s.adc[ch]) * adcValueFullScale)
}

// Note returns the tracked V/oct note in semitones.
func (s *Scaler) Note() float32 {
	return s.pitch.Note()
}

// Calibration returns the calibration record the scaler reads and writes.
func (s *Scaler) Calibration() *CalibrationData {
	return s.calibration
}

// Config returns the configuration the scaler was built with.
func (s *Scaler) Config() Config {
	return s.config
}

// Reset returns all per-session state to power-on values and restarts the
// CV conversion pipeline. Calibration data and modes are left alone.
func (s *Scaler) Reset() {
	s.adc = [NumChannels]float32{}
	s.smoothed = [NumChannels]float32{}
	for i := range s.dejitter {
		s.dejitter[i].Reset()
	}
	s.pitch.Reset()
	s.gate.Reset()
	s.meterLevel = 0
	s.voctC1 = 0

	s.cv.Reset()
	s.cv.Request()
}

// validate checks every coefficient is in (0, 1].
func (t *TransformTable) validate() error {
	for ch, tr := range t {
		if !(tr.FilterCoefficient > 0 && tr.FilterCoefficient <= 1) {
			return fmt.Errorf("%w: channel %s filter coefficient %v outside (0, 1]",
				ErrInvalidConfig, Channel(ch), tr.FilterCoefficient)
		}
	}
	return nil
}
