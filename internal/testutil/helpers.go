// Package testutil provides reusable test helpers and scripted driver doubles
// for the control-signal conditioning tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance  = 1e-6
	SettledTolerance  = 1e-4
	SemitoneTolerance = 1e-3
)

// AssertInRange verifies that a value is within [min, max] and is not NaN.
func AssertInRange(t *testing.T, value, minVal, maxVal float32, msgAndArgs ...any) bool {
	t.Helper()
	if math.IsNaN(float64(value)) || value < minVal || value > maxVal {
		return assert.Fail(t,
			fmt.Sprintf("value %f is outside range [%f, %f]", value, minVal, maxVal), msgAndArgs...)
	}
	return true
}

// AssertGeometricDecay verifies that trajectory[k-1] follows
// target + (start-target)*(1-alpha)^k for every k.
func AssertGeometricDecay(t *testing.T, trajectory []float32, start, target, alpha, tolerance float64) bool {
	t.Helper()
	for i, v := range trajectory {
		k := float64(i + 1)
		want := target + (start-target)*math.Pow(1-alpha, k)
		if !assert.InDelta(t, want, float64(v), tolerance,
			"alpha=%v step=%d: got %f, want %f", alpha, i+1, v, want) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float32) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(float64(v)) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(float64(v), 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}
