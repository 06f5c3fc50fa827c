package decode

import (
	"fmt"

	audio8d "github.com/tphakala/go-audio-8d"
	"github.com/tphakala/go-audio-8d/internal/engine"
)

// Resample converts sig to sampleRate with cubic Hermite interpolation,
// lowpass filtering first when the rate goes down.
// A signal already at the target rate is cloned.
func Resample(sig *audio8d.Signal, sampleRate int) (*audio8d.Signal, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: target sample rate must be positive, got %d",
			audio8d.ErrInvalidParameter, sampleRate)
	}
	if sampleRate == sig.SampleRate {
		return sig.Clone(), nil
	}

	ratio := float64(sampleRate) / float64(sig.SampleRate)
	out := &audio8d.Signal{SampleRate: sampleRate, Channels: make([][]float64, sig.NumChannels())}
	for ch, samples := range sig.Channels {
		out.Channels[ch] = engine.Resample(samples, ratio)
	}
	return out, nil
}
