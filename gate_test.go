package cvscaler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGate_CaptureEdgeDelayedByLatency verifies a rising edge seen at block T
// reaches Parameters.Capture at block T+GateLatency and only there.
func TestGate_CaptureEdgeDelayedByLatency(t *testing.T) {
	r := newRig(t)

	const edgeBlock = 3
	var captures, gates []int
	for block := range 20 {
		r.gates.CaptureLevel = block >= edgeBlock && block < edgeBlock+2
		r.s.Read(&r.p)
		if r.p.Capture {
			captures = append(captures, block)
		}
		if r.p.Gate {
			gates = append(gates, block)
		}
	}

	assert.Equal(t, []int{edgeBlock + GateLatency}, captures)
	assert.Equal(t, []int{edgeBlock + GateLatency, edgeBlock + GateLatency + 1}, gates)
}

func TestGate_FreezeIsImmediate(t *testing.T) {
	r := newRig(t)

	r.gates.FreezeLevel = true
	r.run(1)
	assert.True(t, r.p.Freeze)

	r.run(3)
	assert.True(t, r.p.Freeze, "freeze holds while the level stays high")

	r.gates.FreezeLevel = false
	r.run(1)
	assert.False(t, r.p.Freeze)
}

// TestGate_UICaptureDeliveredOnce verifies a capture injected between two
// blocks shows up on the very next block and is then cleared.
func TestGate_UICaptureDeliveredOnce(t *testing.T) {
	r := newRig(t)
	r.run(10)

	r.s.CaptureFromUI()
	r.s.CaptureFromUI() // collapses into one event
	require.True(t, r.s.gate.CapturePending())

	r.run(1)
	assert.True(t, r.p.Capture)
	assert.False(t, r.s.gate.CapturePending())

	for range 2 * GateLatency {
		r.run(1)
		assert.False(t, r.p.Capture)
	}
}

func TestGate_UICaptureCombinesWithHardwareEdge(t *testing.T) {
	g := NewGatePipeline()
	in := &scriptedGates{}
	var p Parameters

	in.captureEdge = true
	g.Process(in, &p)
	in.captureEdge = false
	for range GateLatency - 1 {
		g.Process(in, &p)
		require.False(t, p.Capture)
	}

	g.RequestCapture()
	g.Process(in, &p)
	assert.True(t, p.Capture, "hardware edge and UI request land on the same block")

	g.Process(in, &p)
	assert.False(t, p.Capture, "both consumed")
}

func TestGatePipeline_Reset(t *testing.T) {
	g := NewGatePipeline()
	in := &scriptedGates{captureEdge: true, capture: true, freezeRise: true}
	var p Parameters
	g.Process(in, &p)
	g.RequestCapture()

	g.Reset()
	in = &scriptedGates{}
	for range GateLatency + 1 {
		g.Process(in, &p)
		assert.False(t, p.Capture)
		assert.False(t, p.Gate)
		assert.False(t, p.Freeze)
	}
}

// scriptedGates reports fixed edge and level values.
type scriptedGates struct {
	freezeRise, freezeFall bool
	capture, captureEdge   bool
}

func (g *scriptedGates) Read()                   {}
func (g *scriptedGates) Freeze() bool            { return g.freezeRise }
func (g *scriptedGates) FreezeRisingEdge() bool  { return g.freezeRise }
func (g *scriptedGates) FreezeFallingEdge() bool { return g.freezeFall }
func (g *scriptedGates) Capture() bool           { return g.capture }
func (g *scriptedGates) CaptureRisingEdge() bool { return g.captureEdge }
