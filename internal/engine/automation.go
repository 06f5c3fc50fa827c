// Package engine implements the sample-level stages of the spatial effect:
// automation curves, shelf filtering, panning, impulse synthesis,
// convolution, compression and resampling.
package engine

import "math"

// AutomationCurve is a zero-order-hold control signal. Values[k] is the
// value set at time k*Step and held until tick k+1; nothing is interpolated.
type AutomationCurve struct {
	Step   float64
	Values []float64
}

// SampleCurve evaluates fn at every tick k*step with k*step < duration.
// Tick times are computed by multiplication so they never drift.
func SampleCurve(duration, step float64, fn func(t float64) float64) AutomationCurve {
	curve := AutomationCurve{Step: step}
	if step <= 0 || duration <= 0 {
		return curve
	}

	for k := 0; ; k++ {
		t := float64(k) * step
		if t >= duration {
			break
		}
		curve.Values = append(curve.Values, fn(t))
	}
	return curve
}

// TickTime returns the time of tick k in seconds.
func (c AutomationCurve) TickTime(k int) float64 {
	return float64(k) * c.Step
}

// TickFrame returns the first frame at which tick k is in effect:
// the first frame whose time is >= k*Step.
func (c AutomationCurve) TickFrame(k int, sampleRate float64) int {
	return int(math.Ceil(c.TickTime(k)*sampleRate - tickEpsilon))
}

// Segments calls fn once per held span of [0, frames). Spans are in tick
// order, contiguous, and non-empty. Ticks that land on the same frame as
// their successor are skipped since they never take effect.
func (c AutomationCurve) Segments(sampleRate float64, frames int, fn func(start, end int, value float64)) {
	n := len(c.Values)
	for k := range n {
		start := c.TickFrame(k, sampleRate)
		if k == 0 {
			start = 0
		}
		end := frames
		if k+1 < n {
			end = c.TickFrame(k+1, sampleRate)
		}
		start = min(max(start, 0), frames)
		end = min(max(end, 0), frames)
		if start >= end {
			continue
		}
		fn(start, end, c.Values[k])
	}
}
