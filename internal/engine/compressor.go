package engine

import (
	"math"

	"github.com/tphakala/go-audio-8d/internal/mathutil"
)

// CompressorConfig describes a feed-forward, stereo-linked compressor.
type CompressorConfig struct {
	ThresholdDB    float64
	Ratio          float64
	KneeDB         float64
	AttackSeconds  float64
	ReleaseSeconds float64
	SampleRate     float64
}

// Compressor applies gain reduction computed from the louder of the
// linked channels. The envelope runs in the dB domain: it moves toward
// deeper reduction with the attack coefficient and recovers with the
// release coefficient.
type Compressor struct {
	cfg          CompressorConfig
	attackAlpha  float64
	releaseAlpha float64
	slope        float64 // 1/ratio - 1, <= 0
	envelopeDB   float64 // current gain reduction, <= 0
}

// NewCompressor returns a compressor with a resting envelope.
// A ratio below 1 is treated as 1.
func NewCompressor(cfg CompressorConfig) *Compressor {
	ratio := max(cfg.Ratio, 1)
	return &Compressor{
		cfg:          cfg,
		attackAlpha:  mathutil.SmoothingCoeff(cfg.AttackSeconds, cfg.SampleRate),
		releaseAlpha: mathutil.SmoothingCoeff(cfg.ReleaseSeconds, cfg.SampleRate),
		slope:        1/ratio - 1,
	}
}

// GainReductionDB returns the static gain reduction (<= 0 dB) for a detector
// level. The soft knee spans KneeDB centred on the threshold:
//
//	2|over| <= W:  gr = (1/R - 1)·(over + W/2)² / (2W)
//	over > W/2:    gr = (1/R - 1)·over
//	otherwise:     gr = 0
func (c *Compressor) GainReductionDB(levelDB float64) float64 {
	over := levelDB - c.cfg.ThresholdDB
	knee := c.cfg.KneeDB

	if knee > 0 && 2*math.Abs(over) <= knee {
		x := over + knee/2
		return c.slope * x * x / (2 * knee)
	}
	if over > 0 {
		return c.slope * over
	}
	return 0
}

// ProcessStereo compresses left and right with a shared envelope and returns
// new buffers. Inputs must be the same length and are not modified.
func (c *Compressor) ProcessStereo(left, right []float64) (outLeft, outRight []float64) {
	outLeft = make([]float64, len(left))
	outRight = make([]float64, len(right))

	env := c.envelopeDB
	for i := range left {
		peak := max(math.Abs(left[i]), math.Abs(right[i]))
		target := c.GainReductionDB(mathutil.LinearToDB(peak))

		alpha := c.releaseAlpha
		if target < env {
			alpha = c.attackAlpha
		}
		env = alpha*env + (1-alpha)*target

		gain := mathutil.DBToLinear(env)
		outLeft[i] = left[i] * gain
		outRight[i] = right[i] * gain
	}
	c.envelopeDB = env

	return outLeft, outRight
}
