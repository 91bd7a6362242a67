package testutil

// CVBank is a scripted CV converter. Tests set Inputs to the physical values
// present at the jacks; Convert latches them the way the DMA-driven converter
// does, and Float returns the latched result.
type CVBank struct {
	Inputs      []float32
	latched     []float32
	Conversions int
}

// NewCVBank creates a converter with n channels.
func NewCVBank(n int) *CVBank {
	return &CVBank{
		Inputs:  make([]float32, n),
		latched: make([]float32, n),
	}
}

// Convert latches the current inputs.
func (b *CVBank) Convert() {
	copy(b.latched, b.Inputs)
	b.Conversions++
}

// Float returns the latched value for channel.
func (b *CVBank) Float(channel int) float32 {
	return b.latched[channel]
}

// PotBank is a scripted potentiometer scanner. Scan latches Inputs.
type PotBank struct {
	Inputs  []float32
	latched []float32
	Scans   int
}

// NewPotBank creates a scanner with n potentiometers.
func NewPotBank(n int) *PotBank {
	return &PotBank{
		Inputs:  make([]float32, n),
		latched: make([]float32, n),
	}
}

// Scan latches the current inputs.
func (b *PotBank) Scan() {
	copy(b.latched, b.Inputs)
	b.Scans++
}

// Float returns the latched value for pot.
func (b *PotBank) Float(pot int) float32 {
	return b.latched[pot]
}

// Gates is a scripted pair of gate inputs. Tests set FreezeLevel and
// CaptureLevel; Read derives edges against the previous Read.
type Gates struct {
	FreezeLevel  bool
	CaptureLevel bool

	freeze, previousFreeze   bool
	capture, previousCapture bool
}

// Read samples the levels and updates edge state.
func (g *Gates) Read() {
	g.previousFreeze, g.freeze = g.freeze, g.FreezeLevel
	g.previousCapture, g.capture = g.capture, g.CaptureLevel
}

// Freeze returns the freeze level sampled by the last Read.
func (g *Gates) Freeze() bool { return g.freeze }

// FreezeRisingEdge reports a low-to-high freeze transition at the last Read.
func (g *Gates) FreezeRisingEdge() bool { return g.freeze && !g.previousFreeze }

// FreezeFallingEdge reports a high-to-low freeze transition at the last Read.
func (g *Gates) FreezeFallingEdge() bool { return !g.freeze && g.previousFreeze }

// Capture returns the capture level sampled by the last Read.
func (g *Gates) Capture() bool { return g.capture }

// CaptureRisingEdge reports a low-to-high capture transition at the last Read.
func (g *Gates) CaptureRisingEdge() bool { return g.capture && !g.previousCapture }
