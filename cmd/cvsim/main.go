// Command cvsim runs the control-signal scaler offline against a scripted
// scenario or a recorded set of control voltages and reports what the
// synthesis engine would have received.
//
// Usage:
//
//	cvsim scenario.yaml
//	cvsim -i recording.wav -m cv-voct,cv-pitch -o params.wav
//	cvsim -v --modes voct-cv,quantized scenario.yaml
//
// A scenario is a YAML file:
//
//	blocks: 2000
//	modes: voct-cv|dejitter
//	inputs:
//	  cv-voct: {value: 0.5, noise: 0.002}
//	  pot-pitch: {ramp: {start: 100, length: 500, from: 0, to: 1}}
//	events:
//	  - {block: 500, capture: true}
//	  - {block: 800, calibrate: offsets}
package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	cvscaler "github.com/tphakala/go-cv-scaler"
)

// CLI defines the command-line interface.
type CLI struct {
	Scenario string   `arg:"" optional:"" type:"existingfile" help:"YAML scenario file"`
	Input    string   `short:"i" type:"existingfile" help:"Recorded control voltages (WAV); replaces scenario inputs"`
	Map      []string `short:"m" default:"cv-voct" help:"Input name for each WAV channel, in order"`
	Output   string   `short:"o" type:"path" help:"Write the parameter streams to this WAV file"`
	Blocks   int      `short:"n" help:"Stop after this many blocks (0: run the whole scenario or recording)"`
	Modes    string   `help:"Initial modes, overriding the scenario (e.g. voct-cv,quantized)"`
	NoFlip   bool     `help:"Treat CV inputs as non-inverted"`
	Verbose  bool     `short:"v" help:"Verbose output"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("cvsim"),
		kong.Description("Offline control-voltage conditioning simulator"),
		kong.UsageOnError(),
	)

	if err := run(cli); err != nil {
		log.Fatal(err)
	}
}

func run(cli *CLI) error {
	if cli.Scenario == "" && cli.Input == "" {
		return errors.New("a scenario file or an input recording is required")
	}

	sc := defaultScenario()
	if cli.Scenario != "" {
		var err error
		if sc, err = LoadScenario(cli.Scenario); err != nil {
			return err
		}
	}

	config, err := sc.config()
	if err != nil {
		return err
	}
	if cli.Modes != "" {
		if config.Modes, err = cvscaler.ParseMode(cli.Modes); err != nil {
			return err
		}
	}
	if cli.NoFlip {
		config.FlipCV = false
	}
	if cli.Verbose {
		config.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		log.Printf("Sample rate: %d Hz, block size: %d", config.SampleRate, config.BlockSize)
		log.Printf("Modes: %s", config.Modes)
	}

	var input inputSource
	if cli.Input != "" {
		input, err = openWAVInputs(cli.Input, cli.Map, config.BlockSize, cli.Verbose)
		if err != nil {
			return err
		}
	} else {
		input = newScenarioInputs(sc)
	}
	defer func() { _ = input.Close() }()

	cal := cvscaler.DefaultCalibration()
	sim, err := newSimulation(config, &cal, input, sc.Events, cli.Verbose)
	if err != nil {
		return err
	}
	if err := sim.run(cli.Blocks); err != nil {
		return err
	}

	newReport(sim.rec, sim.calibrationRejects, config.ControlRate()).render(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))

	if cli.Output != "" {
		if err := writeParameterWAV(cli.Output, int(config.ControlRate()), sim.rec); err != nil {
			return err
		}
		fmt.Printf("Wrote %d blocks to %s\n", sim.rec.len(), cli.Output)
	}
	return nil
}
