package audio8d

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ImpulseResponse is a two-channel reverb impulse. Channel 0 convolves the
// left output and channel 1 the right.
type ImpulseResponse struct {
	Channels [2][]float64
}

// Len returns the impulse length in frames.
func (ir *ImpulseResponse) Len() int {
	return len(ir.Channels[0])
}

func (ir *ImpulseResponse) validate() error {
	if ir == nil {
		return fmt.Errorf("%w: impulse response is nil", ErrInvalidParameter)
	}
	if ir.Len() == 0 {
		return fmt.Errorf("%w: impulse response is empty", ErrInvalidParameter)
	}
	if len(ir.Channels[1]) != ir.Len() {
		return fmt.Errorf("%w: impulse channels differ in length (%d vs %d)",
			ErrInvalidParameter, ir.Len(), len(ir.Channels[1]))
	}
	return nil
}

type config struct {
	seed    uint64
	seeded  bool
	impulse *ImpulseResponse
	logger  logrus.FieldLogger
}

func defaultConfig() config {
	return config{logger: logrus.StandardLogger()}
}

// Option configures an [Engine].
type Option func(*config) error

// WithSeed makes impulse synthesis deterministic: the same seed, input and
// parameters always give bit-identical output.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.seeded = true
		return nil
	}
}

// WithImpulseResponse replaces impulse synthesis with a fixed impulse. The
// impulse is copied; ImpulseLengthSeconds is ignored while it is set.
func WithImpulseResponse(ir *ImpulseResponse) Option {
	return func(cfg *config) error {
		if err := ir.validate(); err != nil {
			return err
		}
		cfg.impulse = &ImpulseResponse{Channels: [2][]float64{
			append([]float64(nil), ir.Channels[0]...),
			append([]float64(nil), ir.Channels[1]...),
		}}
		return nil
	}
}

// WithLogger sets the logger for stage diagnostics (default logrus.StandardLogger()).
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("%w: logger is nil", ErrInvalidParameter)
		}
		cfg.logger = logger
		return nil
	}
}
