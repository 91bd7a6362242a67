package main

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	cvscaler "github.com/tphakala/go-cv-scaler"
)

// Scenario describes a simulated session: the rig configuration, how every
// input moves over time and what happens at given blocks.
type Scenario struct {
	Blocks     int               `yaml:"blocks"`
	SampleRate int               `yaml:"sample_rate"`
	BlockSize  int               `yaml:"block_size"`
	FlipCV     *bool             `yaml:"flip_cv"`
	Modes      *string           `yaml:"modes"`
	Seed       uint64            `yaml:"seed"`
	Inputs     map[string]Source `yaml:"inputs"`
	Events     []Event           `yaml:"events"`
}

// Source generates one input. Value is the resting level; Ramp and Square
// replace it while active, and Noise adds uniform noise of that peak
// amplitude on top.
type Source struct {
	Value  float32 `yaml:"value"`
	Ramp   *Ramp   `yaml:"ramp"`
	Square *Square `yaml:"square"`
	Noise  float32 `yaml:"noise"`
}

// Ramp moves linearly from From to To over Length blocks starting at Start,
// then holds To.
type Ramp struct {
	Start  int     `yaml:"start"`
	Length int     `yaml:"length"`
	From   float32 `yaml:"from"`
	To     float32 `yaml:"to"`
}

// Square alternates between Low and High every Period/2 blocks.
type Square struct {
	Period int     `yaml:"period"`
	Low    float32 `yaml:"low"`
	High   float32 `yaml:"high"`
}

// Event is applied just before the block with the same index runs.
type Event struct {
	Block     int                `yaml:"block"`
	Modes     *string            `yaml:"modes"`
	Capture   bool               `yaml:"capture"`
	Freeze    *bool              `yaml:"freeze"`
	Gate      *bool              `yaml:"gate"`
	Calibrate string             `yaml:"calibrate"`
	Set       map[string]float32 `yaml:"set"`

	modes cvscaler.Mode
	set   map[cvscaler.Channel]float32
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if err := sc.prepare(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// defaultScenario is used when only a recorded input is given.
func defaultScenario() *Scenario {
	sc := &Scenario{}
	_ = sc.prepare()
	return sc
}

func (sc *Scenario) prepare() error {
	if sc.Blocks == 0 {
		sc.Blocks = defaultBlocks
	}
	if sc.Blocks < 0 {
		return fmt.Errorf("invalid scenario: negative block count %d", sc.Blocks)
	}

	for name, src := range sc.Inputs {
		if _, ok := cvscaler.ChannelByName(name); !ok {
			return fmt.Errorf("invalid scenario: unknown input %q", name)
		}
		if src.Ramp != nil && src.Ramp.Length < 0 {
			return fmt.Errorf("invalid scenario: input %q ramp length must not be negative", name)
		}
		if src.Square != nil && src.Square.Period < 2 {
			return fmt.Errorf("invalid scenario: input %q square period must be at least 2", name)
		}
	}

	for i := range sc.Events {
		if err := sc.Events[i].prepare(); err != nil {
			return fmt.Errorf("invalid scenario: event at block %d: %w", sc.Events[i].Block, err)
		}
	}
	slices.SortStableFunc(sc.Events, func(a, b Event) int { return cmp.Compare(a.Block, b.Block) })
	return nil
}

func (e *Event) prepare() error {
	if e.Modes != nil {
		m, err := cvscaler.ParseMode(*e.Modes)
		if err != nil {
			return err
		}
		e.modes = m
	}

	switch e.Calibrate {
	case "", calibrateOffsets, calibrateC1, calibrateC3:
	default:
		return fmt.Errorf("unknown calibration step %q", e.Calibrate)
	}

	if len(e.Set) > 0 {
		e.set = make(map[cvscaler.Channel]float32, len(e.Set))
		for name, v := range e.Set {
			ch, ok := cvscaler.ChannelByName(name)
			if !ok {
				return fmt.Errorf("unknown input %q", name)
			}
			e.set[ch] = v
		}
	}
	return nil
}

// config derives the scaler configuration, starting from the defaults.
func (sc *Scenario) config() (cvscaler.Config, error) {
	cfg := cvscaler.DefaultConfig()
	if sc.SampleRate != 0 {
		cfg.SampleRate = sc.SampleRate
	}
	if sc.BlockSize != 0 {
		cfg.BlockSize = sc.BlockSize
	}
	if sc.FlipCV != nil {
		cfg.FlipCV = *sc.FlipCV
	}
	if sc.Modes != nil {
		m, err := cvscaler.ParseMode(*sc.Modes)
		if err != nil {
			return cfg, err
		}
		cfg.Modes = m
	}
	return cfg, cfg.Validate()
}

// At returns the source value at block.
func (s *Source) At(block int, rng *rand.Rand) float32 {
	v := s.Value

	if r := s.Ramp; r != nil && block >= r.Start {
		switch elapsed := block - r.Start; {
		case elapsed >= r.Length:
			v = r.To
		default:
			v = r.From + (r.To-r.From)*float32(elapsed)/float32(r.Length)
		}
	}

	if sq := s.Square; sq != nil {
		if block%sq.Period < sq.Period/2 {
			v = sq.Low
		} else {
			v = sq.High
		}
	}

	if s.Noise != 0 {
		v += s.Noise * (2*rng.Float32() - 1)
	}
	return v
}

// scenarioInputs generates block inputs from the scenario sources.
type scenarioInputs struct {
	blocks  int
	sources [cvscaler.NumChannels]*Source
	rng     *rand.Rand
}

func newScenarioInputs(sc *Scenario) *scenarioInputs {
	in := &scenarioInputs{
		blocks: sc.Blocks,
		rng:    rand.New(rand.NewPCG(sc.Seed, sc.Seed^0x9e3779b97f4a7c15)),
	}
	for name, src := range sc.Inputs {
		ch, _ := cvscaler.ChannelByName(name)
		in.sources[ch] = &src
	}
	return in
}

// Next fills values for block. It reports false once the scenario is over.
func (in *scenarioInputs) Next(block int, values *[cvscaler.NumChannels]float32) (bool, error) {
	if block >= in.blocks {
		return false, nil
	}
	for ch, src := range in.sources {
		if src != nil {
			values[ch] = src.At(block, in.rng)
		}
	}
	return true, nil
}

func (in *scenarioInputs) Close() error { return nil }
