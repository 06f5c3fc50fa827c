package engine

import (
	"math"

	"github.com/tphakala/go-audio-8d/internal/filter"
)

// BassGainCurve samples the shelf gain gainDB + depthDB·|sin(1.5t)| at every
// automation tick over the given duration.
func BassGainCurve(duration, gainDB, depthDB float64) AutomationCurve {
	return SampleCurve(duration, AutomationStep, func(t float64) float64 {
		return gainDB + depthDB*math.Abs(math.Sin(BassModRate*t))
	})
}

// ApplyModulatedShelf runs src through a 100 Hz low-shelf whose gain follows
// curve. Coefficients are redesigned at every tick while the filter state
// carries over, so the output is continuous across gain changes.
func ApplyModulatedShelf(src []float64, sampleRate float64, curve AutomationCurve) []float64 {
	dst := make([]float64, len(src))
	section := filter.NewSection(filter.Passthrough())

	filtered := false
	curve.Segments(sampleRate, len(src), func(start, end int, gainDB float64) {
		section.SetCoefficients(filter.LowShelf(ShelfFrequency, gainDB, filter.ShelfSlopeQ, sampleRate))
		section.ProcessBlock(dst[start:end], src[start:end])
		filtered = true
	})

	if !filtered {
		copy(dst, src)
	}
	return dst
}
