// Package pipeline provides the small latency primitives used by the
// acquisition cycle: a request/consume ADC conversion stage and fixed-depth
// delay lines.
package pipeline

// Latency constants
const (
	// ConversionLatency is the number of cycles between Conversion.Request
	// and the matching values being visible through Conversion.Value.
	ConversionLatency = 1

	minDelayDepth = 1 // Smallest usable delay line
)
