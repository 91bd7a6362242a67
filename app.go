package cvscaler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Codec is the audio codec collaborator. Init brings the hardware up; Start
// begins calling block once per audio block from the real-time context.
type Codec interface {
	Init(sampleRate, blockSize int) error
	Start(block func()) error
}

// Engine is the granular synthesis engine. Process is called once per block
// with the freshly populated parameters.
type Engine interface {
	Process(p *Parameters)
}

// App owns every per-session component: the scaler, its parameter record and
// the codec driving them. It replaces file-scope singletons; the block
// callback is a closure over the App.
type App struct {
	scaler *Scaler
	params Parameters
	codec  Codec
	engine Engine
	logger *slog.Logger

	blocks uint64

	// calls carries cold-path work from the UI goroutine into the block
	// callback, where it runs between two Reads.
	calls chan func(*Scaler)
}

// NewApp wires an application context. Nothing touches the hardware until
// Init.
func NewApp(config Config, drivers Drivers, calibration *CalibrationData, codec Codec, engine Engine) (*App, error) {
	if codec == nil {
		return nil, fmt.Errorf("%w: codec", ErrNilDriver)
	}
	if engine == nil {
		return nil, fmt.Errorf("%w: engine", ErrNilDriver)
	}

	scaler, err := NewScaler(config, drivers, calibration)
	if err != nil {
		return nil, err
	}

	return &App{
		scaler: scaler,
		codec:  codec,
		engine: engine,
		logger: config.logger(),
		calls:  make(chan func(*Scaler), 1),
	}, nil
}

// Init brings up the codec. Any failure is terminal: callers are expected to
// halt rather than retry.
func (a *App) Init() error {
	cfg := a.scaler.Config()
	if err := a.codec.Init(cfg.SampleRate, cfg.BlockSize); err != nil {
		a.logger.Error("codec initialization failed", "error", err)
		return fmt.Errorf("%w: codec: %w", ErrInitFailed, err)
	}
	return nil
}

// Start hands the block callback to the codec.
func (a *App) Start() error {
	if err := a.codec.Start(a.processBlock); err != nil {
		return fmt.Errorf("%w: codec start: %w", ErrInitFailed, err)
	}
	return nil
}

// processBlock is the real-time callback: run any queued cold-path call,
// condition the inputs and hand the parameters to the engine.
func (a *App) processBlock() {
	select {
	case fn := <-a.calls:
		fn(a.scaler)
	default:
	}

	a.scaler.Read(&a.params)
	a.engine.Process(&a.params)
	a.blocks++
}

// Scaler returns the scaler for UI-side toggles and diagnostics.
func (a *App) Scaler() *Scaler {
	return a.scaler
}

// Parameters returns the parameter record handed to the engine.
func (a *App) Parameters() *Parameters {
	return &a.params
}

// Blocks returns the number of blocks processed. Only meaningful from the
// block goroutine or after the codec has stopped.
func (a *App) Blocks() uint64 {
	return a.blocks
}

// CalibrateOffsets runs Scaler.CalibrateOffsets between two blocks and waits
// for it to finish.
func (a *App) CalibrateOffsets(ctx context.Context) error {
	_, err := a.run(ctx, func(s *Scaler) bool {
		s.CalibrateOffsets()
		return true
	})
	return err
}

// CalibrateC1 runs Scaler.CalibrateC1 between two blocks.
func (a *App) CalibrateC1(ctx context.Context) error {
	_, err := a.run(ctx, func(s *Scaler) bool {
		s.CalibrateC1()
		return true
	})
	return err
}

// CalibrateC3 runs Scaler.CalibrateC3 between two blocks and reports whether
// the fit was accepted.
func (a *App) CalibrateC3(ctx context.Context) (bool, error) {
	return a.run(ctx, (*Scaler).CalibrateC3)
}

// Queued call states.
const (
	callPending int32 = iota
	callRunning
	callCancelled
)

// run queues fn for the block goroutine and waits for its result. A call
// cancelled before the block goroutine picks it up is skipped, so a cancelled
// calibration never commits.
func (a *App) run(ctx context.Context, fn func(*Scaler) bool) (bool, error) {
	var state atomic.Int32
	result := make(chan bool, 1)
	call := func(s *Scaler) {
		if !state.CompareAndSwap(callPending, callRunning) {
			return
		}
		result <- fn(s)
	}

	select {
	case a.calls <- call:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-result:
		return ok, nil
	case <-ctx.Done():
		if state.CompareAndSwap(callPending, callCancelled) {
			return false, ctx.Err()
		}
		// Already running: report what it did.
		return <-result, nil
	}
}
