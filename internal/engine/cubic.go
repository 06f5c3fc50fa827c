package engine

import (
	"math"

	"github.com/tphakala/go-audio-8d/internal/filter"
)

// Anti-aliasing lowpass for downsampling, relative to the output rate
const (
	antiAliasPassband    = 0.45
	antiAliasTransition  = 0.05
	antiAliasAttenuation = 80.0
)

// Resample converts input to a new rate. When downsampling it first removes
// content above the new Nyquist frequency with a Kaiser-windowed lowpass,
// then interpolates with ResampleCubic.
func Resample(input []float64, ratio float64) []float64 {
	if ratio > 0 && ratio < 1 && len(input) > 0 {
		taps, err := filter.DesignLowPassAuto(antiAliasPassband*ratio, antiAliasTransition*ratio, antiAliasAttenuation)
		if err == nil {
			input = FilterCentered(input, taps)
		}
	}
	return ResampleCubic(input, ratio)
}

// FilterCentered convolves signal with an odd-length linear-phase kernel and
// removes the kernel's group delay, so the output lines up with the input.
func FilterCentered(signal, kernel []float64) []float64 {
	delay := (len(kernel) - 1) / 2

	padded := make([]float64, len(signal)+delay)
	copy(padded, signal)

	out := make([]float64, len(padded))
	ConvolveTruncated(out, padded, kernel)
	return out[delay:]
}

// ResampleCubic converts input to a new rate using cubic (4-point, 3rd order)
// Hermite interpolation. ratio is outputRate/inputRate. Edge samples are
// repeated outside the input so the first and last frames line up with the
// source. The output has round(len(input)*ratio) samples, at least one.
func ResampleCubic(input []float64, ratio float64) []float64 {
	if len(input) == 0 || ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return []float64{}
	}
	if ratio == 1 {
		return append([]float64(nil), input...)
	}

	outputSize := max(int(math.Round(float64(len(input))*ratio)), 1)
	output := make([]float64, outputSize)

	step := 1.0 / ratio
	for j := range output {
		// Multiplying instead of accumulating keeps long signals from drifting
		pos := float64(j) * step
		i := int(pos)
		x := pos - float64(i)

		output[j] = hermite(
			sampleAt(input, i-1),
			sampleAt(input, i),
			sampleAt(input, i+1),
			sampleAt(input, i+2),
			x,
		)
	}

	return output
}

// sampleAt returns input[i] with the edges held outside the buffer.
func sampleAt(input []float64, i int) float64 {
	switch {
	case i < 0:
		return input[0]
	case i >= len(input):
		return input[len(input)-1]
	default:
		return input[i]
	}
}

// hermite interpolates between y1 and y2 at fractional position x.
// Uses the formula: y = ((a*x + b)*x + c)*x + d
func hermite(y0, y1, y2, y3, x float64) float64 {
	// Hermite basis functions
	// These coefficients provide smooth interpolation with continuous first derivative
	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	return ((coefA*x+coefB)*x+coefC)*x + coefD
}
