// Package filter provides the control-rate smoothing filters used on
// conditioned ADC channels.
package filter

// OnePole advances a first-order exponential smoother in place:
//
//	state += coefficient * (input - state)
//
// A coefficient of 1 passes input straight through; smaller values trade
// response time for noise rejection. After k constant-input updates the
// remaining error is (1-coefficient)^k of the initial error.
func OnePole(state *float32, input, coefficient float32) {
	*state += coefficient * (input - *state)
}
