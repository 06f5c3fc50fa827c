package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBesselI0(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{1, 1.2660658777520082},
		{3, 4.880792585865024},
		{5, 27.239871823604442},
		{10, 2815.716628466254},
	}

	for _, tt := range tests {
		got := BesselI0(tt.x)
		assert.InDelta(t, tt.want, got, tt.want*1e-6, "I0(%v)", tt.x)
		assert.InDelta(t, got, BesselI0(-tt.x), 0, "I0 is even")
	}
}

func TestKaiserBeta(t *testing.T) {
	assert.InDelta(t, 0.0, KaiserBeta(20), 0)
	assert.InDelta(t, 0.0, KaiserBeta(21), 0)
	assert.InDelta(t, 0.1102*(80-8.7), KaiserBeta(80), 1e-12)

	prev := KaiserBeta(21)
	for att := 22.0; att <= 150; att++ {
		b := KaiserBeta(att)
		assert.Greater(t, b, prev, "beta must grow with attenuation at %v dB", att)
		prev = b
	}
}

func TestEstimateFilterLength(t *testing.T) {
	n := EstimateFilterLength(80, 0.05)
	assert.Equal(t, 1, n%2, "length must be odd")
	assert.InDelta(t, 101, n, 2)

	assert.Greater(t, EstimateFilterLength(80, 0.01), n, "narrower transition needs more taps")
	assert.Equal(t, minFilterLength, EstimateFilterLength(0, 0.4))
	assert.Equal(t, maxFilterLength, EstimateFilterLength(150, 1e-6))
	assert.Equal(t, EstimateFilterLength(80, defaultTransitionBW), EstimateFilterLength(80, 0))
}
