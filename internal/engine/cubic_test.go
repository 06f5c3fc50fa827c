package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-8d/internal/testutil"
)

func TestResampleCubic_Length(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		ratio float64
		want  int
	}{
		{"upsample 44.1 to 48", 44100, 48000.0 / 44100.0, 48000},
		{"downsample 48 to 44.1", 48000, 44100.0 / 48000.0, 44100},
		{"double", 10, 2, 20},
		{"tiny", 1, 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ResampleCubic(make([]float64, tt.n), tt.ratio)
			assert.Len(t, out, tt.want)
		})
	}
}

func TestResampleCubic_PreservesSamplePoints(t *testing.T) {
	in := testutil.Sine(100, 8000, 0.8, 400)
	out := ResampleCubic(in, 2)

	for i := range in {
		require.InDelta(t, in[i], out[2*i], 1e-12, "sample %d", i)
	}
}

func TestResampleCubic_Sine(t *testing.T) {
	in := testutil.Sine(440, 44100, 0.5, 44100)
	out := ResampleCubic(in, 48000.0/44100.0)

	want := testutil.Sine(440, 48000, 0.5, len(out))
	// Skip the edges where held samples bend the curve
	for i := 10; i < len(out)-10; i++ {
		require.InDelta(t, want[i], out[i], 5e-4, "sample %d", i)
	}
}

func TestResampleCubic_Identity(t *testing.T) {
	in := []float64{1, 2, 3}
	out := ResampleCubic(in, 1)
	assert.Equal(t, in, out)

	out[0] = 9
	assert.InDelta(t, 1.0, in[0], 0, "identity must copy")
}

func TestResampleCubic_InvalidRatio(t *testing.T) {
	assert.Empty(t, ResampleCubic([]float64{1}, 0))
	assert.Empty(t, ResampleCubic([]float64{1}, math.NaN()))
	assert.Empty(t, ResampleCubic(nil, 2))
}

func TestFilterCentered_Alignment(t *testing.T) {
	in := testutil.Impulse(50, 200)
	kernel := []float64{0.25, 0.5, 0.25}

	out := FilterCentered(in, kernel)
	require.Len(t, out, len(in))
	assert.InDelta(t, 0.25, out[49], 1e-12)
	assert.InDelta(t, 0.5, out[50], 1e-12)
	assert.InDelta(t, 0.25, out[51], 1e-12)
}

func TestResample_RemovesAliases(t *testing.T) {
	const (
		inRate  = 44100.0
		outRate = 8000.0
	)
	ratio := outRate / inRate

	// 1 kHz sits in the new passband; 6 kHz would fold down to 2 kHz
	keep := Resample(testutil.Sine(1000, inRate, 0.5, 44100), ratio)
	drop := Resample(testutil.Sine(6000, inRate, 0.5, 44100), ratio)
	require.Len(t, keep, 8000)
	require.Len(t, drop, 8000)

	mid := func(s []float64) []float64 { return s[1000 : len(s)-1000] }
	assert.InDelta(t, 0.5/math.Sqrt2, testutil.RMS(mid(keep)), 0.01)
	assert.Less(t, testutil.RMS(mid(drop)), 0.005)

	// Plain cubic interpolation lets the alias through
	aliased := ResampleCubic(testutil.Sine(6000, inRate, 0.5, 44100), ratio)
	assert.Greater(t, testutil.RMS(mid(aliased)), 0.05)
}

func TestResample_UpsamplingMatchesCubic(t *testing.T) {
	in := testutil.Sine(440, 44100, 0.5, 4410)
	assert.Equal(t, ResampleCubic(in, 2), Resample(in, 2))
}
