package audio8d

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the engine, the encoder and the decoders.
var (
	// ErrInvalidInput indicates a nil, empty or ragged signal.
	ErrInvalidInput = errors.New("invalid input signal")

	// ErrInvalidParameter indicates an out-of-range or non-finite effect parameter.
	ErrInvalidParameter = errors.New("invalid effect parameter")

	// ErrDecode indicates the input could not be decoded to PCM.
	ErrDecode = errors.New("decode failed")

	// ErrEncoding indicates the signal cannot be represented in a WAV header.
	ErrEncoding = errors.New("encoding failed")
)

// Signal is planar PCM audio: Channels[c][i] is frame i of channel c.
// Samples are nominally in [-1, 1] but may exceed it between stages.
type Signal struct {
	// SampleRate in Hz.
	SampleRate int

	// Channels holds one slice per channel, all of equal length.
	Channels [][]float64
}

// NewSignal validates and wraps planar channel data. The slices are not copied.
func NewSignal(sampleRate int, channels [][]float64) (*Signal, error) {
	s := &Signal{SampleRate: sampleRate, Channels: channels}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSilence returns a zeroed signal. It does not validate its arguments.
func NewSilence(sampleRate, channels, frames int) *Signal {
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	return &Signal{SampleRate: sampleRate, Channels: data}
}

// Validate checks that the signal can be processed: a positive sample rate,
// at least one channel, at least one frame and equal channel lengths.
func (s *Signal) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: signal is nil", ErrInvalidInput)
	}

	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, s.SampleRate)
	}

	if len(s.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidInput)
	}

	frames := len(s.Channels[0])
	if frames == 0 {
		return fmt.Errorf("%w: no frames", ErrInvalidInput)
	}

	for ch, samples := range s.Channels {
		if len(samples) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidInput, ch, len(samples), frames)
		}
	}

	return nil
}

// NumChannels returns the channel count.
func (s *Signal) NumChannels() int {
	return len(s.Channels)
}

// Frames returns the number of frames per channel.
func (s *Signal) Frames() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// Duration returns the signal length in seconds.
func (s *Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(s.Frames()) / float64(s.SampleRate)
}

// Length returns the signal length as a time.Duration.
func (s *Signal) Length() time.Duration {
	return time.Duration(s.Duration() * float64(time.Second))
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	out := &Signal{SampleRate: s.SampleRate, Channels: make([][]float64, len(s.Channels))}
	for ch, samples := range s.Channels {
		out.Channels[ch] = append([]float64(nil), samples...)
	}
	return out
}
