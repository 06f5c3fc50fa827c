package audio8d

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-8d/internal/engine"
)

// Engine renders the spatial effect. It is immutable after New and safe
// for concurrent use.
type Engine struct {
	params Parameters
	law    engine.PanLaw
	cfg    config
}

// New creates an engine for the given parameters.
func New(params *Parameters, opts ...Option) (*Engine, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: parameters are nil", ErrInvalidParameter)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	law, _ := params.PanLaw.engineLaw()

	return &Engine{
		params: *params,
		law:    law,
		cfg:    cfg,
	}, nil
}

// Parameters returns a copy of the engine's parameters.
func (e *Engine) Parameters() Parameters {
	return e.params
}

// Process renders in and returns a new stereo signal with the same sample
// rate and frame count, every sample in [-1, 1]. The input is not modified.
func (e *Engine) Process(in *Signal) (*Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if e.cfg.impulse == nil {
		if err := e.params.validateForRate(in.SampleRate); err != nil {
			return nil, err
		}
	}

	start := time.Now()

	channels, err := e.buildPipeline(in).Run(in.Channels)
	if err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}

	e.cfg.logger.WithFields(logrus.Fields{
		"strategy": e.params.Strategy.String(),
		"frames":   in.Frames(),
		"duration": time.Since(start),
	}).Debug("Signal processed")

	return &Signal{SampleRate: in.SampleRate, Channels: channels}, nil
}

// Process renders in with a one-off engine. See Engine.Process.
func Process(in *Signal, params *Parameters, opts ...Option) (*Signal, error) {
	e, err := New(params, opts...)
	if err != nil {
		return nil, err
	}
	return e.Process(in)
}
