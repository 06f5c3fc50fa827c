package audio8d

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-8d/internal/engine"
	"github.com/tphakala/go-audio-8d/internal/pipeline"
)

// buildPipeline assembles the stage chain for one invocation. Automation
// curves and the impulse are derived from the input's rate and duration.
func (e *Engine) buildPipeline(in *Signal) *pipeline.Pipeline {
	sampleRate := float64(in.SampleRate)
	duration := in.Duration()

	logger := e.cfg.logger.WithFields(logrus.Fields{
		"strategy":    e.params.Strategy.String(),
		"sample_rate": in.SampleRate,
		"channels":    in.NumChannels(),
		"frames":      in.Frames(),
	})

	if e.params.Strategy == StrategyCircular {
		return pipeline.New(logger,
			&circularStage{
				sampleRate: sampleRate,
				panner:     engine.NewCircularPanner(e.params.PanRadius, e.params.PanSpeed),
			},
			clampStage{},
		)
	}

	return pipeline.New(logger,
		splitStage{},
		newBassStage(sampleRate, duration, &e.params),
		newPanStage(sampleRate, duration, e.law),
		&reverbStage{impulse: e.impulseFor(sampleRate, logger)},
		newCompressorStage(sampleRate, &e.params),
		clampStage{},
	)
}

// impulseFor returns the impulse for one invocation: the injected one or a
// freshly synthesized one, normalized when enabled.
func (e *Engine) impulseFor(sampleRate float64, logger logrus.FieldLogger) [2][]float64 {
	var ir [2][]float64
	source := "injected"

	if e.cfg.impulse != nil {
		ir = e.cfg.impulse.Channels
	} else {
		source = "synthesized"
		length := engine.ImpulseLength(e.params.ImpulseLengthSeconds, sampleRate)
		ir = engine.SynthesizeImpulse(length, e.newRand())
	}

	scale := 1.0
	if e.params.NormalizeImpulse {
		scale = engine.ImpulseNormalizationScale(ir[:], sampleRate)
		normalized := engine.NormalizeImpulse(ir[:], sampleRate)
		ir = [2][]float64{normalized[0], normalized[1]}
	}

	logger.WithFields(logrus.Fields{
		"source": source,
		"length": len(ir[0]),
		"scale":  scale,
		"seeded": e.cfg.seeded,
	}).Debug("Impulse response ready")

	return ir
}

// newRand returns the generator for one impulse. Seeded engines restart the
// same sequence on every call.
func (e *Engine) newRand() *rand.Rand {
	if e.cfg.seeded {
		return rand.New(rand.NewPCG(e.cfg.seed, e.cfg.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
