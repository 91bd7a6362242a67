package pipeline

// Converter is an asynchronous analog-to-digital converter bank.
// Convert starts a conversion of every channel; Float returns the normalized
// [0, 1] result of the most recently completed conversion.
type Converter interface {
	Convert()
	Float(channel int) float32
}

// Conversion makes the request-then-consume latency of a Converter explicit.
//
// A cycle calls Consume first, which latches the results of the conversion
// requested on the previous cycle, and Request last, which starts the
// conversion the next cycle will consume. Values are therefore always exactly
// ConversionLatency cycles old. Until the first request has been consumed,
// Value returns zero.
type Conversion struct {
	converter Converter
	values    []float32
	pending   bool
	consumed  uint64
}

// NewConversion creates a pipeline over the first channels channels of c.
func NewConversion(c Converter, channels int) *Conversion {
	if channels < 0 {
		channels = 0
	}

	return &Conversion{
		converter: c,
		values:    make([]float32, channels),
	}
}

// Request starts the next conversion. Its results become visible after the
// following Consume.
func (p *Conversion) Request() {
	p.converter.Convert()
	p.pending = true
}

// Consume latches the results of the outstanding request, if any.
// It reports whether new values were latched.
func (p *Conversion) Consume() bool {
	if !p.pending {
		return false
	}

	for i := range p.values {
		p.values[i] = p.converter.Float(i)
	}
	p.pending = false
	p.consumed++

	return true
}

// Value returns the latched sample for channel.
func (p *Conversion) Value(channel int) float32 {
	return p.values[channel]
}

// Pending reports whether a requested conversion has not been consumed yet.
func (p *Conversion) Pending() bool {
	return p.pending
}

// Consumed returns how many conversions have been latched since creation or
// the last Reset.
func (p *Conversion) Consumed() uint64 {
	return p.consumed
}

// Channels returns the number of channels latched per conversion.
func (p *Conversion) Channels() int {
	return len(p.values)
}

// Latency returns the pipeline depth in cycles.
func (p *Conversion) Latency() int {
	return ConversionLatency
}

// Reset drops any outstanding request and zeroes the latched values.
func (p *Conversion) Reset() {
	for i := range p.values {
		p.values[i] = 0
	}
	p.pending = false
	p.consumed = 0
}
