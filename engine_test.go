package audio8d

import (
	"math"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-8d/internal/testutil"
)

const testRate = 44100

func sineSignal(t *testing.T, freq float64, channels, frames int) *Signal {
	t.Helper()
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = testutil.Sine(freq, testRate, 0.5, frames)
	}
	sig, err := NewSignal(testRate, data)
	require.NoError(t, err)
	return sig
}

// identityImpulse makes the reverb stage a no-op.
func identityImpulse() *ImpulseResponse {
	return &ImpulseResponse{Channels: [2][]float64{{1}, {1}}}
}

// transparentParams disables everything except shelf and panning.
func transparentParams() *Parameters {
	p := DefaultParameters()
	p.NormalizeImpulse = false
	p.CompressorRatio = 1
	return p
}

func TestProcess_SilenceInSilenceOut(t *testing.T) {
	for _, channels := range []int{1, 2} {
		in := NewSilence(testRate, channels, testRate)

		out, err := Process(in, DefaultParameters(), WithSeed(1))
		require.NoError(t, err)

		require.Equal(t, 2, out.NumChannels())
		for ch := range out.Channels {
			require.Len(t, out.Channels[ch], testRate)
			testutil.AssertAllZero(t, out.Channels[ch], "channel %d", ch)
		}
	}
}

func TestProcess_OutputIsClamped(t *testing.T) {
	// Full-scale square wave through an unnormalized reverb overshoots badly
	frames := testRate / 2
	square := make([]float64, frames)
	for i := range square {
		square[i] = 1
		if (i/50)%2 == 1 {
			square[i] = -1
		}
	}
	in, err := NewSignal(testRate, [][]float64{square, square})
	require.NoError(t, err)

	params := DefaultParameters()
	params.NormalizeImpulse = false
	params.CompressorRatio = 1
	params.ImpulseLengthSeconds = 0.2

	out, err := Process(in, params, WithSeed(7))
	require.NoError(t, err)

	clipped := 0
	for ch := range out.Channels {
		testutil.AssertAllInRange(t, out.Channels[ch], -1, 1)
		testutil.AssertNoNaNOrInf(t, out.Channels[ch])
		for _, v := range out.Channels[ch] {
			if math.Abs(v) == 1 {
				clipped++
			}
		}
	}
	assert.Positive(t, clipped, "test signal should actually hit the clamp")
}

func TestProcess_PreservesShape(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		frames   int
	}{
		{"mono", 1, 4410},
		{"stereo", 2, 4410},
		{"surround", 6, 4410},
		{"single frame", 2, 1},
		{"shorter than impulse", 2, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sineSignal(t, 440, tt.channels, tt.frames)

			out, err := Process(in, DefaultParameters(), WithSeed(3))
			require.NoError(t, err)

			assert.Equal(t, testRate, out.SampleRate)
			require.Equal(t, 2, out.NumChannels())
			assert.Equal(t, tt.frames, out.Frames())
		})
	}
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	in := sineSignal(t, 220, 2, 8820)
	orig := in.Clone()

	_, err := Process(in, DefaultParameters(), WithSeed(1))
	require.NoError(t, err)

	for ch := range in.Channels {
		testutil.AssertBitIdentical(t, orig.Channels[ch], in.Channels[ch])
	}
}

func TestProcess_MonoMatchesDuplicatedStereo(t *testing.T) {
	mono := sineSignal(t, 330, 1, 8820)
	stereo := &Signal{SampleRate: testRate, Channels: [][]float64{mono.Channels[0], mono.Channels[0]}}

	outMono, err := Process(mono, DefaultParameters(), WithSeed(9))
	require.NoError(t, err)
	outStereo, err := Process(stereo, DefaultParameters(), WithSeed(9))
	require.NoError(t, err)

	for ch := range 2 {
		testutil.AssertBitIdentical(t, outStereo.Channels[ch], outMono.Channels[ch])
	}
}

func TestProcess_ExtraChannelsIgnored(t *testing.T) {
	base := sineSignal(t, 440, 2, 4410)
	extra := &Signal{SampleRate: testRate, Channels: [][]float64{
		base.Channels[0], base.Channels[1], testutil.Constant(0.9, 4410),
	}}

	want, err := Process(base, DefaultParameters(), WithSeed(2))
	require.NoError(t, err)
	got, err := Process(extra, DefaultParameters(), WithSeed(2))
	require.NoError(t, err)

	for ch := range 2 {
		testutil.AssertBitIdentical(t, want.Channels[ch], got.Channels[ch])
	}
}

func TestProcess_DeterministicWithSeed(t *testing.T) {
	in := sineSignal(t, 440, 2, testRate)

	a, err := Process(in, DefaultParameters(), WithSeed(42))
	require.NoError(t, err)
	b, err := Process(in, DefaultParameters(), WithSeed(42))
	require.NoError(t, err)
	c, err := Process(in, DefaultParameters(), WithSeed(43))
	require.NoError(t, err)

	for ch := range 2 {
		testutil.AssertBitIdentical(t, a.Channels[ch], b.Channels[ch])
	}
	assert.NotEqual(t, a.Channels[0], c.Channels[0], "different seeds should give different reverbs")

	encA, err := Encode(a)
	require.NoError(t, err)
	encB, err := Encode(b)
	require.NoError(t, err)
	assert.Equal(t, encA, encB)
}

func TestProcess_DeterministicWithInjectedImpulse(t *testing.T) {
	in := sineSignal(t, 440, 1, 8820)
	ir := &ImpulseResponse{Channels: [2][]float64{
		{0.5, 0.25, 0.125},
		{0.3, 0, -0.1},
	}}

	a, err := Process(in, DefaultParameters(), WithImpulseResponse(ir))
	require.NoError(t, err)
	b, err := Process(in, DefaultParameters(), WithImpulseResponse(ir))
	require.NoError(t, err)

	for ch := range 2 {
		testutil.AssertBitIdentical(t, a.Channels[ch], b.Channels[ch])
	}
}

func TestProcess_ReverbTruncatesTail(t *testing.T) {
	const frames, delay = 4410, 100
	in := sineSignal(t, 440, 2, frames)

	dry, err := Process(in, transparentParams(), WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)

	delayed := &ImpulseResponse{}
	for ch := range delayed.Channels {
		delayed.Channels[ch] = make([]float64, delay+1)
		delayed.Channels[ch][delay] = 1
	}
	wet, err := Process(in, transparentParams(), WithImpulseResponse(delayed))
	require.NoError(t, err)

	require.Equal(t, frames, wet.Frames())
	for ch := range 2 {
		testutil.AssertAllInRange(t, wet.Channels[ch][:delay], -1e-12, 1e-12)
		assert.InDeltaSlice(t, dry.Channels[ch][:frames-delay], wet.Channels[ch][delay:], 1e-12)
	}
}

func TestProcess_BassShelfOnlyTouchesLeftSource(t *testing.T) {
	in := sineSignal(t, 50, 2, testRate)

	flat := transparentParams()
	flat.BassGainDB = 0
	flat.BassModDepthDB = 0

	boosted := transparentParams()
	boosted.BassGainDB = 6
	boosted.BassModDepthDB = 0

	outFlat, err := Process(in, flat, WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)
	outBoost, err := Process(in, boosted, WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)

	// Right output comes only from source R, which is never filtered
	testutil.AssertBitIdentical(t, outFlat.Channels[1], outBoost.Channels[1])

	// Left output carries the boosted source L
	assert.Greater(t, testutil.RMS(outBoost.Channels[0]), 1.4*testutil.RMS(outFlat.Channels[0]))
}

func TestProcess_PanAutomation(t *testing.T) {
	// Constant input with everything else neutral exposes the pan gains directly
	in, err := NewSignal(testRate, [][]float64{testutil.Constant(0.5, testRate)})
	require.NoError(t, err)

	p := transparentParams()
	p.BassGainDB = 0
	p.BassModDepthDB = 0

	out, err := Process(in, p, WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)

	// Tick 0: source L at p=0 (centre), source R at p=0.9
	angleL := math.Pi / 4
	angleR := (0.9 + 1) * math.Pi / 4
	assert.InDelta(t, 0.5*math.Cos(angleL), out.Channels[0][0], 1e-9)
	assert.InDelta(t, 0.5*math.Sin(angleR), out.Channels[1][0], 1e-9)

	// Held until tick 1 at frame 2205
	assert.InDelta(t, out.Channels[0][0], out.Channels[0][2204], 1e-12)
	assert.NotEqual(t, out.Channels[0][2204], out.Channels[0][2205])

	// Tick 10 (t=0.5): source L at sin(1)·0.9
	pL := math.Sin(1) * 0.9
	assert.InDelta(t, 0.5*math.Cos((pL+1)*math.Pi/4), out.Channels[0][22050], 1e-9)
}

func TestProcess_LinearPanLaw(t *testing.T) {
	in, err := NewSignal(testRate, [][]float64{testutil.Constant(0.5, 100)})
	require.NoError(t, err)

	p := transparentParams()
	p.BassGainDB = 0
	p.BassModDepthDB = 0
	p.PanLaw = PanLinear

	out, err := Process(in, p, WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)

	assert.InDelta(t, 0.25, out.Channels[0][0], 1e-12)
	assert.InDelta(t, 0.5*(1+0.9)/2, out.Channels[1][0], 1e-12)
}

func TestProcess_CircularStrategy(t *testing.T) {
	in, err := NewSignal(testRate, [][]float64{testutil.Constant(0.5, testRate)})
	require.NoError(t, err)

	p := DefaultParameters()
	p.Strategy = StrategyCircular

	out, err := Process(in, p)
	require.NoError(t, err)

	require.Equal(t, 2, out.NumChannels())
	require.Equal(t, testRate, out.Frames())

	// Starts hard right at distance 2: gain 1/(1+0.8)
	assert.InDelta(t, 0, out.Channels[0][0], 1e-9)
	assert.InDelta(t, 0.5/1.8, out.Channels[1][0], 1e-9)

	// No reverb, so two runs without a seed still agree
	again, err := Process(in, p)
	require.NoError(t, err)
	testutil.AssertBitIdentical(t, out.Channels[0], again.Channels[0])
}

func TestProcess_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   *Signal
	}{
		{"nil", nil},
		{"no channels", &Signal{SampleRate: testRate}},
		{"no frames", &Signal{SampleRate: testRate, Channels: [][]float64{{}, {}}}},
		{"ragged", &Signal{SampleRate: testRate, Channels: [][]float64{{0, 0}, {0}}}},
		{"zero rate", &Signal{SampleRate: 0, Channels: [][]float64{{0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Process(tt.in, DefaultParameters())
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, out)
		})
	}
}

func TestProcess_ImpulseShorterThanOneSample(t *testing.T) {
	p := DefaultParameters()
	p.ImpulseLengthSeconds = 0.001

	in, err := NewSignal(100, [][]float64{{0.1, 0.2, 0.3}})
	require.NoError(t, err)

	_, err = Process(in, p)
	require.ErrorIs(t, err, ErrInvalidParameter)

	// An injected impulse replaces the synthesized one
	_, err = Process(in, p, WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)
}

func TestNew_InvalidParameters(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrInvalidParameter)

	p := DefaultParameters()
	p.CompressorRatio = 0.5
	_, err = New(p)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(DefaultParameters(), WithLogger(nil))
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(DefaultParameters(), WithImpulseResponse(&ImpulseResponse{}))
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(DefaultParameters(), WithImpulseResponse(&ImpulseResponse{Channels: [2][]float64{{1, 0}, {1}}}))
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNew_CopiesParametersAndImpulse(t *testing.T) {
	p := transparentParams()
	ir := identityImpulse()

	e, err := New(p, WithImpulseResponse(ir))
	require.NoError(t, err)

	p.CompressorRatio = 100
	ir.Channels[0][0] = 1000

	assert.InDelta(t, 1.0, e.Parameters().CompressorRatio, 0)

	// A leaked impulse edit would push the output into the clamp
	in := sineSignal(t, 440, 1, 1000)
	out, err := e.Process(in)
	require.NoError(t, err)
	testutil.AssertAllInRange(t, out.Channels[0], -0.6, 0.6)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e, err := New(DefaultParameters(), WithSeed(11))
	require.NoError(t, err)

	in := sineSignal(t, 440, 2, 8820)
	want, err := e.Process(in)
	require.NoError(t, err)

	const goroutines = 8
	results := make([]*Signal, goroutines)
	errs := make([]error, goroutines)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[g], errs[g] = e.Process(in)
		}()
	}
	wg.Wait()

	for g := range goroutines {
		require.NoError(t, errs[g])
		for ch := range 2 {
			testutil.AssertBitIdentical(t, want.Channels[ch], results[g].Channels[ch])
		}
	}
}

func TestEngine_LogsStages(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e, err := New(DefaultParameters(), WithSeed(1), WithLogger(logger))
	require.NoError(t, err)

	_, err = e.Process(sineSignal(t, 440, 2, 4410))
	require.NoError(t, err)

	var stages []string
	for _, entry := range hook.AllEntries() {
		if name, ok := entry.Data["stage"].(string); ok {
			stages = append(stages, name)
		}
	}
	assert.Equal(t, []string{
		stageSplit, stageBass, stagePan, stageReverb, stageCompress, stageClamp,
	}, stages)
}

func TestProcess_BassShelfFollowsModulation(t *testing.T) {
	in := sineSignal(t, 50, 2, testRate)

	steady := transparentParams()
	steady.BassGainDB = 0
	steady.BassModDepthDB = 0

	modulated := transparentParams()
	modulated.BassGainDB = 0
	modulated.BassModDepthDB = 6

	outSteady, err := Process(in, steady, WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)
	outMod, err := Process(in, modulated, WithImpulseResponse(identityImpulse()))
	require.NoError(t, err)

	// |sin(0)| = 0, so both runs share the first tick
	tick1 := testRate / 20
	testutil.AssertBitIdentical(t, outSteady.Channels[0][:tick1], outMod.Channels[0][:tick1])
	testutil.AssertBitIdentical(t, outSteady.Channels[1], outMod.Channels[1])

	assert.Greater(t, testutil.RMS(outMod.Channels[0][tick1:]), 1.1*testutil.RMS(outSteady.Channels[0][tick1:]))
}
