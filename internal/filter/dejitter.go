package filter

// Dejitter is a very slow weighted moving average for channels fed by a noisy
// hardware source. Each update keeps DejitterHistoryWeight parts of the
// previous output and one part of the new sample:
//
//	out = (98*out + in) / 99
//
// The zero value starts from 0 and settles in a few hundred updates.
type Dejitter struct {
	value float32
}

// Process folds one sample into the average and returns the new output.
func (d *Dejitter) Process(input float32) float32 {
	d.value = (DejitterHistoryWeight*d.value + input) / dejitterTotalWeight
	return d.value
}

// Value returns the current filter output.
func (d *Dejitter) Value() float32 {
	return d.value
}

// Reset returns the filter to zero.
func (d *Dejitter) Reset() {
	d.value = 0
}
