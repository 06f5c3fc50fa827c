package filter

import (
	"math"

	"github.com/tphakala/go-audio-8d/internal/mathutil"
)

const (
	// ShelfSlopeQ is the Q equivalent of a shelf slope S = 1, the steepest
	// slope without overshoot in the magnitude response.
	ShelfSlopeQ = 1 / math.Sqrt2

	// shelfGainDivisor gives the RBJ "A" amplitude: A = 10^(gain/40)
	shelfGainDivisor = 40.0
)

// LowShelf designs an RBJ cookbook low-shelf biquad.
//
// freq is the corner frequency in Hz, gainDB the shelf gain and q the
// shelf quality. Invalid frequencies (outside (0, Nyquist)) or a
// non-finite gain yield passthrough coefficients.
func LowShelf(freq, gainDB, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || !mathutil.IsFinite(gainDB) {
		return Passthrough()
	}
	if q <= 0 || !mathutil.IsFinite(q) {
		q = ShelfSlopeQ
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/shelfGainDivisor)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalize(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || !mathutil.IsFinite(sampleRate) {
		return 0, false
	}
	if freq <= 0 || freq >= sampleRate/2 || !mathutil.IsFinite(freq) {
		return 0, false
	}
	return 2 * math.Pi * freq / sampleRate, true
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || !mathutil.IsFinite(a0) {
		return Passthrough()
	}
	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
