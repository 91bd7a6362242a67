package cvscaler

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Mode is a bitmask of live control-path toggles.
type Mode uint32

const (
	// ModePitchCV adds the pitch CV input to the pitch knob.
	ModePitchCV Mode = 1 << iota

	// ModeVOctCV enables V/oct note tracking.
	ModeVOctCV

	// ModeVOctQuantized rounds the tracked note to whole semitones and uses it
	// as the final pitch, ignoring the pitch knob curve. The knob position
	// biases the rounding instead.
	ModeVOctQuantized

	// ModeVOctDejitter layers the slow dejitter filter onto the smoothed V/oct
	// input and pitch knob and skips note hysteresis. The filter state is kept
	// while the mode is off.
	ModeVOctDejitter

	// ModeCalibratedPitch derives the tracked note from the stored two-point
	// calibration instead of the fixed five-octave map.
	ModeCalibratedPitch

	modeMask = ModePitchCV | ModeVOctCV | ModeVOctQuantized | ModeVOctDejitter | ModeCalibratedPitch
)

// DefaultModes enables both pitch inputs with continuous tracking.
const DefaultModes = ModePitchCV | ModeVOctCV

var modeNames = []struct {
	mode Mode
	name string
}{
	{ModePitchCV, "pitch-cv"},
	{ModeVOctCV, "voct-cv"},
	{ModeVOctQuantized, "quantized"},
	{ModeVOctDejitter, "dejitter"},
	{ModeCalibratedPitch, "calibrated"},
}

// Has reports whether every bit of m is set.
func (m Mode) Has(flag Mode) bool {
	return m&flag == flag
}

// String lists the enabled modes separated by '|'.
func (m Mode) String() string {
	if m == 0 {
		return "none"
	}

	var parts []string
	for _, mn := range modeNames {
		if m.Has(mn.mode) {
			parts = append(parts, mn.name)
		}
	}
	if rest := m &^ modeMask; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseMode parses a '|' or ',' separated list of mode names as produced by
// Mode.String.
func ParseMode(s string) (Mode, error) {
	var m Mode
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return 0, nil
	}

	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		name := strings.TrimSpace(field)
		found := false
		for _, mn := range modeNames {
			if mn.name == name {
				m |= mn.mode
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, name)
		}
	}
	return m, nil
}

// Config holds scaler configuration.
type Config struct {
	// SampleRate is the audio sample rate in Hz.
	SampleRate int

	// BlockSize is the number of audio samples per block. Read runs once per
	// block, so SampleRate/BlockSize is the control rate.
	BlockSize int

	// FlipCV inverts every CV-type channel (r -> 1-r). Set it for hardware
	// revisions whose CV input stage is wired inverted.
	FlipCV bool

	// Modes is the initial set of live toggles.
	Modes Mode

	// Logger receives cold-path events (initialization, calibration).
	// The per-block path never logs. Nil discards everything.
	Logger *slog.Logger
}

// Common errors returned by the scaler.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid scaler configuration")

	// ErrNilDriver indicates a required hardware driver was not supplied.
	ErrNilDriver = errors.New("missing driver")

	// ErrNilCalibration indicates no calibration record was supplied.
	ErrNilCalibration = errors.New("missing calibration data")

	// ErrInitFailed indicates hardware bring-up failed. It is not retryable.
	ErrInitFailed = errors.New("initialization failed")
)

// DefaultConfig returns the configuration of the current hardware revision.
func DefaultConfig() Config {
	return Config{
		SampleRate: defaultSampleRate,
		BlockSize:  defaultBlockSize,
		FlipCV:     true,
		Modes:      DefaultModes,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.BlockSize < 1 || c.BlockSize > maxBlockSize {
		return fmt.Errorf("%w: block size must be 1-%d", ErrInvalidConfig, maxBlockSize)
	}

	if c.BlockSize > c.SampleRate {
		return fmt.Errorf("%w: block size exceeds one second of audio", ErrInvalidConfig)
	}

	if rest := c.Modes &^ modeMask; rest != 0 {
		return fmt.Errorf("%w: unknown mode bits 0x%x", ErrInvalidConfig, uint32(rest))
	}

	return nil
}

// ControlRate returns the number of Read calls per second.
func (c *Config) ControlRate() float64 {
	return float64(c.SampleRate) / float64(c.BlockSize)
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
