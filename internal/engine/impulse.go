package engine

import (
	"math"
	"math/rand/v2"

	"github.com/tphakala/simd/f64"
)

// ImpulseChannels is the fixed channel count of a synthesized reverb impulse.
const ImpulseChannels = 2

// ImpulseLength returns the impulse length in frames for the given duration,
// floor(seconds * sampleRate).
func ImpulseLength(seconds, sampleRate float64) int {
	return int(math.Floor(seconds * sampleRate))
}

// SynthesizeImpulse draws a decaying, lightly modulated noise impulse of the
// given length. Channel 0 is drawn completely before channel 1, so a given
// generator state always yields the same pair.
func SynthesizeImpulse(length int, rng *rand.Rand) [ImpulseChannels][]float64 {
	var ir [ImpulseChannels][]float64
	if length <= 0 {
		return ir
	}

	decayScale := float64(length) / impulseDecayDivisor
	for ch := range ir {
		samples := make([]float64, length)
		for i := range samples {
			decay := math.Exp(-float64(i) / decayScale)
			mod := math.Sin(impulseModRate*float64(i)) * impulseModDepth
			samples[i] = (rng.Float64()*2 - 1) * decay * (1 + mod)
		}
		ir[ch] = samples
	}
	return ir
}

// ImpulseNormalizationScale returns the gain that brings an impulse to the
// calibrated loudness used for convolution reverbs:
//
//	scale = 0.00125 / max(rms, 0.000125) * 44100 / sampleRate
//
// rms is taken over all samples of all channels. Empty impulses get the
// floor value.
func ImpulseNormalizationScale(ir [][]float64, sampleRate float64) float64 {
	var sumSquares float64
	total := 0
	for _, ch := range ir {
		sumSquares += f64.DotProduct(ch, ch)
		total += len(ch)
	}

	power := 0.0
	if total > 0 {
		power = math.Sqrt(sumSquares / float64(total))
	}
	power = max(power, normMinPower)

	return normGainCalibration / power * normGainCalibrationSampleRate / sampleRate
}

// NormalizeImpulse returns scaled copies of the impulse channels. The input
// is left untouched.
func NormalizeImpulse(ir [][]float64, sampleRate float64) [][]float64 {
	scale := ImpulseNormalizationScale(ir, sampleRate)
	out := make([][]float64, len(ir))
	for i, ch := range ir {
		out[i] = make([]float64, len(ch))
		f64.Scale(out[i], ch, scale)
	}
	return out
}
