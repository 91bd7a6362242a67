package pipeline

// DelayLine is a fixed-depth FIFO used to hold a signal back by a whole number
// of cycles. It is always full: every Push evicts and returns the oldest
// element, which is the value pushed Depth calls earlier (or the zero value
// while the line is still priming).
//
// The backing storage is allocated once by NewDelayLine; Push, Oldest and
// Clear never allocate.
type DelayLine[T any] struct {
	data []T
	pos  int // index of the oldest element, next to be overwritten
}

// NewDelayLine creates a delay line holding depth elements.
// Depths below one are raised to one.
func NewDelayLine[T any](depth int) *DelayLine[T] {
	if depth < minDelayDepth {
		depth = minDelayDepth
	}

	return &DelayLine[T]{
		data: make([]T, depth),
	}
}

// Push appends v as the newest element and returns the oldest one.
func (d *DelayLine[T]) Push(v T) T {
	oldest := d.data[d.pos]
	d.data[d.pos] = v

	d.pos++
	if d.pos == len(d.data) {
		d.pos = 0
	}

	return oldest
}

// Oldest returns the element the next Push will evict, without removing it.
func (d *DelayLine[T]) Oldest() T {
	return d.data[d.pos]
}

// Newest returns the most recently pushed element.
func (d *DelayLine[T]) Newest() T {
	i := d.pos - 1
	if i < 0 {
		i = len(d.data) - 1
	}
	return d.data[i]
}

// Depth returns the delay in pushes.
func (d *DelayLine[T]) Depth() int {
	return len(d.data)
}

// Clear resets every slot to the zero value.
func (d *DelayLine[T]) Clear() {
	var zero T
	for i := range d.data {
		d.data[i] = zero
	}
	d.pos = 0
}
