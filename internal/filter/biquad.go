// Package filter provides the biquad shelf and FIR lowpass designs used by the effect stages.
package filter

import "math"

// Coefficients holds the normalized transfer function of a second-order
// section. a0 is normalized to 1 and not stored.
//
// Direct Form II Transposed sign convention:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Passthrough returns unity-gain coefficients.
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// Section is a biquad with coefficients and DF2T state.
//
// Coefficients may be replaced between blocks with SetCoefficients; the
// delay state is kept so the output stays continuous across changes.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients swaps the transfer function without clearing state.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y
	return y
}

// ProcessBlock filters src into dst. dst and src may alias.
func (s *Section) ProcessBlock(dst, src []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range src {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		dst[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset clears the delay state.
func (s *Section) Reset() {
	s.d0, s.d1 = 0, 0
}

// MagnitudeSquared returns |H(f)|^2 in closed form.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return num / den
}

// MagnitudeDB returns the magnitude response at freqHz in dB.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}
