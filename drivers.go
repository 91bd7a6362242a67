package cvscaler

import "fmt"

// CVBank is the CV converter driver. Convert starts an asynchronous
// conversion of every CV channel; Float returns the normalized [0, 1] result of
// the last completed conversion.
type CVBank interface {
	Convert()
	Float(channel int) float32
}

// PotBank is the potentiometer scanner. Scan latches a fresh reading of every
// pot; Float returns the normalized [0, 1] value of one pot.
type PotBank interface {
	Scan()
	Float(pot int) float32
}

// GateInputs is the gate input driver for the freeze and capture jacks.
// Read samples both lines; the other methods report what that Read saw.
type GateInputs interface {
	Read()
	Freeze() bool
	FreezeRisingEdge() bool
	FreezeFallingEdge() bool
	Capture() bool
	CaptureRisingEdge() bool
}

// Drivers bundles the hardware collaborators a Scaler reads from.
type Drivers struct {
	CV    CVBank
	Pots  PotBank
	Gates GateInputs
}

func (d *Drivers) validate() error {
	switch {
	case d.CV == nil:
		return fmt.Errorf("%w: CV bank", ErrNilDriver)
	case d.Pots == nil:
		return fmt.Errorf("%w: potentiometer bank", ErrNilDriver)
	case d.Gates == nil:
		return fmt.Errorf("%w: gate inputs", ErrNilDriver)
	}
	return nil
}
