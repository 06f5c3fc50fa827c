package decode

import (
	goaudio "github.com/go-audio/audio"

	audio8d "github.com/tphakala/go-audio-8d"
)

const (
	bitDepth8  = 8
	bitDepth16 = 16
	bitDepth24 = 24
	bitDepth32 = 32

	// 8-bit WAV stores unsigned samples centred on 128
	unsigned8Offset = 128
)

// fullScale returns 2^(bits-1), the magnitude of the most negative sample.
func fullScale(bitDepth int) float64 {
	return float64(uint64(1) << (bitDepth - 1))
}

// intBufferToSignal normalizes interleaved integer PCM to [-1, 1) and splits
// it into planar channels.
func intBufferToSignal(data []int, format *goaudio.Format, bitDepth int, unsigned bool) *audio8d.Signal {
	scale := 1 / fullScale(bitDepth)
	offset := 0
	if unsigned {
		offset = unsigned8Offset
	}

	interleaved := make([]float64, len(data))
	for i, v := range data {
		interleaved[i] = float64(v-offset) * scale
	}

	return &audio8d.Signal{
		SampleRate: format.SampleRate,
		Channels:   audio8d.Deinterleave(interleaved, format.NumChannels),
	}
}

// float32ToSignal splits interleaved float samples into planar channels.
func float32ToSignal(data []float32, sampleRate, channels int) *audio8d.Signal {
	interleaved := make([]float64, len(data))
	for i, v := range data {
		interleaved[i] = float64(v)
	}

	return &audio8d.Signal{
		SampleRate: sampleRate,
		Channels:   audio8d.Deinterleave(interleaved, channels),
	}
}

// int16LEToFloat converts little-endian int16 PCM bytes to floats.
func int16LEToFloat(b []byte) []float64 {
	out := make([]float64, len(b)/2)
	scale := 1 / fullScale(bitDepth16)
	for i := range out {
		v := int16(uint16(b[2*i]) | uint16(b[2*i+1])<<8)
		out[i] = float64(v) * scale
	}
	return out
}

func supportedIntDepth(bitDepth int) bool {
	switch bitDepth {
	case bitDepth8, bitDepth16, bitDepth24, bitDepth32:
		return true
	default:
		return false
	}
}
