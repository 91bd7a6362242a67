package main

import cvscaler "github.com/tphakala/go-cv-scaler"

// rig holds the simulated analog inputs. values is what sits at the jacks;
// the converter and scanner latch it the same way the hardware does.
type rig struct {
	values [cvscaler.NumChannels]float32

	cv    cvBank
	pots  potBank
	gates gates
}

func newRig() *rig {
	r := &rig{}
	r.cv.rig = r
	r.pots.rig = r
	return r
}

func (r *rig) drivers() cvscaler.Drivers {
	return cvscaler.Drivers{CV: &r.cv, Pots: &r.pots, Gates: &r.gates}
}

type cvBank struct {
	rig     *rig
	latched [cvscaler.NumCVChannels]float32
}

func (b *cvBank) Convert() {
	copy(b.latched[:], b.rig.values[:cvscaler.NumCVChannels])
}

func (b *cvBank) Float(channel int) float32 { return b.latched[channel] }

type potBank struct {
	rig     *rig
	latched [cvscaler.NumPotChannels]float32
}

func (b *potBank) Scan() {
	copy(b.latched[:], b.rig.values[cvscaler.NumCVChannels:])
}

func (b *potBank) Float(pot int) float32 { return b.latched[pot] }

// gates derives edges from the freeze and capture levels.
type gates struct {
	freezeLevel, captureLevel bool

	freeze, prevFreeze   bool
	capture, prevCapture bool
}

func (g *gates) Read() {
	g.prevFreeze, g.freeze = g.freeze, g.freezeLevel
	g.prevCapture, g.capture = g.capture, g.captureLevel
}

func (g *gates) Freeze() bool            { return g.freeze }
func (g *gates) FreezeRisingEdge() bool  { return g.freeze && !g.prevFreeze }
func (g *gates) FreezeFallingEdge() bool { return !g.freeze && g.prevFreeze }
func (g *gates) Capture() bool           { return g.capture }
func (g *gates) CaptureRisingEdge() bool { return g.capture && !g.prevCapture }
