package engine

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// PanLaw selects how a pan position in [-1, 1] maps to left/right gains.
type PanLaw int

const (
	// PanEqualPower keeps gL² + gR² = 1 across the stereo field.
	PanEqualPower PanLaw = iota
	// PanLinear splits amplitude linearly; the centre sits at -6 dB.
	PanLinear
)

// String returns the law's flag name.
func (l PanLaw) String() string {
	switch l {
	case PanEqualPower:
		return "equal-power"
	case PanLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Valid reports whether l is a known pan law.
func (l PanLaw) Valid() bool {
	return l == PanEqualPower || l == PanLinear
}

// Side picks one output of a panner.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// PanGains returns the left and right gains for pan position p.
// p is clamped to [-1, 1].
func PanGains(law PanLaw, p float64) (left, right float64) {
	p = min(max(p, -1), 1)

	if law == PanLinear {
		return (1 - p) / 2, (1 + p) / 2
	}

	angle := (p + 1) * math.Pi / 4
	return math.Cos(angle), math.Sin(angle)
}

// LeftPanPosition is the pan trajectory of source L: sin(2t)·0.9.
func LeftPanPosition(t float64) float64 {
	return math.Sin(LeftPanRate*t) * PanDepth
}

// RightPanPosition is the pan trajectory of source R: cos(2.2t)·0.9.
func RightPanPosition(t float64) float64 {
	return math.Cos(RightPanRate*t) * PanDepth
}

// PanChannel writes src scaled by one side of a time-varying panner into dst.
// Gains follow the curve's zero-order hold, one constant-gain segment per
// tick. len(dst) must equal len(src).
func PanChannel(dst, src []float64, curve AutomationCurve, sampleRate float64, law PanLaw, side Side) {
	if len(curve.Values) == 0 {
		clear(dst)
		return
	}

	curve.Segments(sampleRate, len(src), func(start, end int, p float64) {
		left, right := PanGains(law, p)
		gain := left
		if side == SideRight {
			gain = right
		}
		f64.Scale(dst[start:end], src[start:end], gain)
	})
}
