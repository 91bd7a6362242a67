package filter

// Dejitter weighting
const (
	// DejitterHistoryWeight is the weight of the previous output relative to a
	// new sample of weight one.
	DejitterHistoryWeight = 98.0

	dejitterTotalWeight = DejitterHistoryWeight + 1.0
)
