package audio8d

import (
	"github.com/tphakala/go-audio-8d/internal/engine"
	"github.com/tphakala/go-audio-8d/internal/mathutil"
)

// Stage names, as they appear in logs and errors.
const (
	stageSplit    = "split"
	stageBass     = "bass-shelf"
	stagePan      = "pan"
	stageReverb   = "reverb"
	stageCompress = "compressor"
	stageCircular = "circular"
	stageClamp    = "clamp"
)

// splitStage picks the two source channels. A mono input feeds both sources;
// channels past the second are dropped.
type splitStage struct{}

func (splitStage) Name() string { return stageSplit }

func (splitStage) Process(in [][]float64) ([][]float64, error) {
	left := in[0]
	right := in[0]
	if len(in) > 1 {
		right = in[1]
	}
	return [][]float64{
		append([]float64(nil), left...),
		append([]float64(nil), right...),
	}, nil
}

// bassStage runs the modulated low shelf on the left source only.
type bassStage struct {
	sampleRate float64
	curve      engine.AutomationCurve
}

func newBassStage(sampleRate float64, duration float64, p *Parameters) *bassStage {
	return &bassStage{
		sampleRate: sampleRate,
		curve:      engine.BassGainCurve(duration, p.BassGainDB, p.BassModDepthDB),
	}
}

func (s *bassStage) Name() string { return stageBass }

func (s *bassStage) Process(in [][]float64) ([][]float64, error) {
	return [][]float64{
		engine.ApplyModulatedShelf(in[0], s.sampleRate, s.curve),
		in[1],
	}, nil
}

// panStage applies each source's pan automation and merges the pair:
// output 0 is the left gain of source L, output 1 the right gain of source R.
type panStage struct {
	sampleRate float64
	law        engine.PanLaw
	leftCurve  engine.AutomationCurve
	rightCurve engine.AutomationCurve
}

func newPanStage(sampleRate, duration float64, law engine.PanLaw) *panStage {
	return &panStage{
		sampleRate: sampleRate,
		law:        law,
		leftCurve:  engine.SampleCurve(duration, engine.AutomationStep, engine.LeftPanPosition),
		rightCurve: engine.SampleCurve(duration, engine.AutomationStep, engine.RightPanPosition),
	}
}

func (s *panStage) Name() string { return stagePan }

func (s *panStage) Process(in [][]float64) ([][]float64, error) {
	left := make([]float64, len(in[0]))
	right := make([]float64, len(in[1]))
	engine.PanChannel(left, in[0], s.leftCurve, s.sampleRate, s.law, engine.SideLeft)
	engine.PanChannel(right, in[1], s.rightCurve, s.sampleRate, s.law, engine.SideRight)
	return [][]float64{left, right}, nil
}

// reverbStage convolves each channel with its impulse channel and keeps the
// first len(input) frames.
type reverbStage struct {
	impulse [2][]float64
}

func (s *reverbStage) Name() string { return stageReverb }

func (s *reverbStage) Process(in [][]float64) ([][]float64, error) {
	out := make([][]float64, stereoChannels)
	for ch := range out {
		out[ch] = make([]float64, len(in[ch]))
		engine.ConvolveTruncated(out[ch], in[ch], s.impulse[ch])
	}
	return out, nil
}

// compressorStage runs a fresh stereo-linked compressor per invocation.
type compressorStage struct {
	cfg engine.CompressorConfig
}

func newCompressorStage(sampleRate float64, p *Parameters) *compressorStage {
	return &compressorStage{cfg: engine.CompressorConfig{
		ThresholdDB:    p.CompressorThresholdDB,
		Ratio:          p.CompressorRatio,
		KneeDB:         p.CompressorKneeDB,
		AttackSeconds:  p.CompressorAttackSeconds,
		ReleaseSeconds: p.CompressorReleaseSeconds,
		SampleRate:     sampleRate,
	}}
}

func (s *compressorStage) Name() string { return stageCompress }

func (s *compressorStage) Process(in [][]float64) ([][]float64, error) {
	left, right := engine.NewCompressor(s.cfg).ProcessStereo(in[0], in[1])
	return [][]float64{left, right}, nil
}

// circularStage renders the source orbiting the listener.
type circularStage struct {
	sampleRate float64
	panner     *engine.CircularPanner
}

func (s *circularStage) Name() string { return stageCircular }

func (s *circularStage) Process(in [][]float64) ([][]float64, error) {
	out := s.panner.Process(in[:min(len(in), stereoChannels)], s.sampleRate)
	return [][]float64{out[0], out[1]}, nil
}

// clampStage limits every sample to [-1, 1].
type clampStage struct{}

func (clampStage) Name() string { return stageClamp }

func (clampStage) Process(in [][]float64) ([][]float64, error) {
	out := make([][]float64, len(in))
	for ch, samples := range in {
		out[ch] = make([]float64, len(samples))
		for i, v := range samples {
			out[ch][i] = mathutil.Clamp(v, -1, 1)
		}
	}
	return out, nil
}
