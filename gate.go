package cvscaler

import (
	"sync/atomic"

	"github.com/tphakala/go-cv-scaler/internal/pipeline"
)

// GatePipeline turns the gate jacks into the Freeze, Capture and Gate
// parameters.
//
// Freeze is applied immediately. The capture edge and the gate level are held
// back GateLatency blocks so they reach the engine in step with control paths
// that carry the same latency. A capture requested from the UI bypasses the
// delay and is delivered exactly once on the next block.
type GatePipeline struct {
	freeze  bool
	capture *pipeline.DelayLine[bool]
	gate    *pipeline.DelayLine[bool]

	// uiCapture is set from the UI goroutine and consumed by Process. The
	// flag itself is the only coordination between the two.
	uiCapture atomic.Bool
}

// NewGatePipeline creates a pipeline with empty delay lines.
func NewGatePipeline() *GatePipeline {
	return &GatePipeline{
		capture: pipeline.NewDelayLine[bool](GateLatency),
		gate:    pipeline.NewDelayLine[bool](GateLatency),
	}
}

// RequestCapture latches a synthetic capture event. Safe to call from any
// goroutine; repeated calls before the next block collapse into one event.
func (g *GatePipeline) RequestCapture() {
	g.uiCapture.Store(true)
}

// CapturePending reports whether a UI capture is waiting for the next block.
func (g *GatePipeline) CapturePending() bool {
	return g.uiCapture.Load()
}

// Process samples the gate inputs and writes Freeze, Capture and Gate.
func (g *GatePipeline) Process(in GateInputs, p *Parameters) {
	in.Read()

	switch {
	case in.FreezeRisingEdge():
		g.freeze = true
	case in.FreezeFallingEdge():
		g.freeze = false
	}
	p.Freeze = g.freeze

	captured := g.capture.Push(in.CaptureRisingEdge())
	p.Gate = g.gate.Push(in.Capture())
	p.Capture = g.uiCapture.Swap(false) || captured
}

// Reset clears the delay lines, freeze state and any pending UI capture.
func (g *GatePipeline) Reset() {
	g.freeze = false
	g.capture.Clear()
	g.gate.Clear()
	g.uiCapture.Store(false)
}
