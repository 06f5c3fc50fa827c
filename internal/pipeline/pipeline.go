// Package pipeline runs an ordered chain of buffer-to-buffer processing stages.
// Each stage receives the previous stage's channels and returns fresh ones;
// nothing is shared between stages except the slices handed over.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrStageShape is returned when a stage produces channels whose lengths
// differ from the frame count the pipeline was started with.
var ErrStageShape = errors.New("stage output has wrong shape")

// Stage represents a single processing stage in the effect pipeline.
type Stage interface {
	// Name identifies the stage in logs and errors.
	Name() string

	// Process transforms input channels to output channels. It must not
	// modify in and must return buffers of the same frame count.
	Process(in [][]float64) ([][]float64, error)
}

// StageFunc adapts a plain function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(in [][]float64) ([][]float64, error)
}

// Name returns the stage name.
func (s StageFunc) Name() string { return s.StageName }

// Process calls the wrapped function.
func (s StageFunc) Process(in [][]float64) ([][]float64, error) { return s.Fn(in) }

// Pipeline runs stages strictly in order.
type Pipeline struct {
	stages []Stage
	logger logrus.FieldLogger
}

// New creates a pipeline. A nil logger falls back to the logrus standard logger.
func New(logger logrus.FieldLogger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// StageNames returns the stage names in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Run feeds in through every stage and returns the last stage's output.
// The first failing stage aborts the run; no partial result is returned.
func (p *Pipeline) Run(in [][]float64) ([][]float64, error) {
	frames := 0
	if len(in) > 0 {
		frames = len(in[0])
	}

	buf := in
	for i, stage := range p.stages {
		start := time.Now()

		out, err := stage.Process(buf)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.Name(), err)
		}
		if err := checkShape(out, frames); err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.Name(), err)
		}

		p.logger.WithFields(logrus.Fields{
			"stage":    stage.Name(),
			"channels": len(out),
			"frames":   frames,
			"duration": time.Since(start),
		}).Debug("Stage complete")

		buf = out
	}

	return buf, nil
}

func checkShape(channels [][]float64, frames int) error {
	if len(channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrStageShape)
	}
	for ch, samples := range channels {
		if len(samples) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, want %d",
				ErrStageShape, ch, len(samples), frames)
		}
	}
	return nil
}
