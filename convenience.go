package audio8d

// ProcessMono renders a mono source and returns the stereo result.
func ProcessMono(samples []float64, sampleRate int, params *Parameters, opts ...Option) (left, right []float64, err error) {
	sig, err := NewSignal(sampleRate, [][]float64{samples})
	if err != nil {
		return nil, nil, err
	}

	out, err := Process(sig, params, opts...)
	if err != nil {
		return nil, nil, err
	}

	return out.Channels[0], out.Channels[1], nil
}

// ProcessStereo renders a stereo source given as two planar channels.
func ProcessStereo(left, right []float64, sampleRate int, params *Parameters, opts ...Option) (leftOut, rightOut []float64, err error) {
	sig, err := NewSignal(sampleRate, [][]float64{left, right})
	if err != nil {
		return nil, nil, err
	}

	out, err := Process(sig, params, opts...)
	if err != nil {
		return nil, nil, err
	}

	return out.Channels[0], out.Channels[1], nil
}

// Convert processes sig and encodes the result as WAV in one step.
func Convert(sig *Signal, params *Parameters, opts ...Option) ([]byte, error) {
	out, err := Process(sig, params, opts...)
	if err != nil {
		return nil, err
	}
	return Encode(out)
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	minLen := min(len(left), len(right))
	result := make([]float64, minLen*stereoChannels)
	interleave(result, [][]float64{left[:minLen], right[:minLen]}, 0, minLen)
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// A trailing half frame is dropped.
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	planar := Deinterleave(interleaved, stereoChannels)
	return planar[0], planar[1]
}

// Deinterleave splits interleaved samples into planar channels.
// A trailing partial frame is dropped.
func Deinterleave(interleaved []float64, channels int) [][]float64 {
	if channels <= 0 {
		return nil
	}
	frames := len(interleaved) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range channels {
			out[ch][i] = interleaved[i*channels+ch]
		}
	}
	return out
}
