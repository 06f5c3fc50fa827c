package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/tphakala/go-audio-8d/internal/mathutil"
)

const (
	minFilterTaps = 3
	maxFilterTaps = 8191

	// Sums below this are treated as zero when normalizing DC gain
	sincZeroThreshold = 1e-10
)

// ErrFilterDesign is returned for lowpass parameters that cannot be realized.
var ErrFilterDesign = errors.New("invalid filter design")

// KaiserWindow returns a symmetric Kaiser window of the given length:
// w[n] = I₀(β·sqrt(1 - ((n-α)/α)²)) / I₀(β) with α = (length-1)/2.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / i0Beta
	}

	return window
}

// LowPassParams describes a windowed-sinc lowpass FIR.
type LowPassParams struct {
	// NumTaps is the filter length; odd lengths give an integer group delay.
	NumTaps int

	// Cutoff is the -6 dB frequency as a fraction of the sample rate, in (0, 0.5).
	Cutoff float64

	// Attenuation is the stopband attenuation in dB and selects the Kaiser β.
	Attenuation float64
}

// Validate checks if the parameters are valid.
func (p *LowPassParams) Validate() error {
	if p.NumTaps < minFilterTaps || p.NumTaps > maxFilterTaps {
		return fmt.Errorf("%w: %d taps (must be in [%d, %d])", ErrFilterDesign, p.NumTaps, minFilterTaps, maxFilterTaps)
	}
	if !(p.Cutoff > 0 && p.Cutoff < 0.5) {
		return fmt.Errorf("%w: cutoff %v (must be in (0, 0.5))", ErrFilterDesign, p.Cutoff)
	}
	if !(p.Attenuation >= 0) {
		return fmt.Errorf("%w: attenuation %v dB (must be non-negative)", ErrFilterDesign, p.Attenuation)
	}
	return nil
}

// DesignLowPass designs a linear-phase Kaiser-windowed sinc lowpass with
// unity DC gain.
func DesignLowPass(p LowPassParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(p.NumTaps, mathutil.KaiserBeta(p.Attenuation))
	taps := make([]float64, p.NumTaps)
	center := float64(p.NumTaps-1) / 2

	for n := range taps {
		x := float64(n) - center

		// sin(2πfc·x)/(πx), which tends to 2fc at x = 0
		sinc := 2 * p.Cutoff
		if math.Abs(x) >= sincZeroThreshold {
			sinc = math.Sin(2*math.Pi*p.Cutoff*x) / (math.Pi * x)
		}
		taps[n] = sinc * window[n]
	}

	if sum := f64.Sum(taps); math.Abs(sum) > sincZeroThreshold {
		f64.Scale(taps, taps, 1/sum)
	}

	return taps, nil
}

// DesignLowPassAuto sizes the filter from the attenuation and transition
// bandwidth (both relative to the sample rate) and designs it.
func DesignLowPassAuto(cutoff, transitionBW, attenuation float64) ([]float64, error) {
	return DesignLowPass(LowPassParams{
		NumTaps:     mathutil.EstimateFilterLength(attenuation, transitionBW),
		Cutoff:      cutoff,
		Attenuation: attenuation,
	})
}

// FIRMagnitudeDB evaluates the magnitude response of FIR taps in dB at a
// frequency given as a fraction of the sample rate.
func FIRMagnitudeDB(taps []float64, freq float64) float64 {
	omega := 2 * math.Pi * freq

	var re, im float64
	for n, h := range taps {
		re += h * math.Cos(omega*float64(n))
		im -= h * math.Sin(omega*float64(n))
	}

	return mathutil.LinearToDB(math.Hypot(re, im))
}
