// Package testutil provides reusable test helpers for the effect engine tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	DBTolerance      = 0.01
)

// Sine returns frames samples of a sine wave at freq Hz with the given amplitude.
func Sine(freq, sampleRate, amplitude float64, frames int) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

// Constant returns frames samples all equal to v.
func Constant(v float64, frames int) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = v
	}
	return out
}

// Impulse returns a unit impulse at position pos within frames samples.
func Impulse(pos, frames int) []float64 {
	out := make([]float64, frames)
	if pos >= 0 && pos < frames {
		out[pos] = 1
	}
	return out
}

// RMS returns the root mean square of s.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%g", i, v)
		}
	}
	return true
}

// AssertBitIdentical verifies that two slices match exactly, element for element.
func AssertBitIdentical(t *testing.T, want, got []float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		if math.Float64bits(want[i]) != math.Float64bits(got[i]) {
			return assert.Fail(t, "samples differ",
				"index %d: want %v, got %v", i, want[i], got[i])
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
