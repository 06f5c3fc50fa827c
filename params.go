package audio8d

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-audio-8d/internal/engine"
)

// Strategy selects the spatialization algorithm.
type Strategy int

const (
	// StrategyStereoPan pans each source on its own trajectory and adds
	// bass modulation, reverb and compression.
	StrategyStereoPan Strategy = iota

	// StrategyCircular moves the source on a circle around the listener
	// with azimuth panning and distance attenuation only.
	StrategyCircular
)

// String returns the strategy's flag name.
func (s Strategy) String() string {
	switch s {
	case StrategyStereoPan:
		return "stereo-pan"
	case StrategyCircular:
		return "circular"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a flag name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stereo-pan", "stereo", "pan":
		return StrategyStereoPan, nil
	case "circular", "circle", "legacy":
		return StrategyCircular, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidParameter, name)
	}
}

// PanLaw maps a pan position to channel gains.
type PanLaw int

const (
	// PanEqualPower uses gL = cos((p+1)π/4), gR = sin((p+1)π/4).
	PanEqualPower PanLaw = iota

	// PanLinear uses gL = (1-p)/2, gR = (1+p)/2.
	PanLinear
)

// String returns the law's flag name.
func (l PanLaw) String() string {
	if e, ok := l.engineLaw(); ok {
		return e.String()
	}
	return fmt.Sprintf("PanLaw(%d)", int(l))
}

// ParsePanLaw maps a flag name to a PanLaw.
func ParsePanLaw(name string) (PanLaw, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "equal-power", "equalpower", "power":
		return PanEqualPower, nil
	case "linear":
		return PanLinear, nil
	default:
		return 0, fmt.Errorf("%w: unknown pan law %q", ErrInvalidParameter, name)
	}
}

// engineLaw maps l to the engine's law; both enums share their values.
func (l PanLaw) engineLaw() (engine.PanLaw, bool) {
	law := engine.PanLaw(l)
	return law, law.Valid()
}

// Parameters holds the effect settings. Use DefaultParameters as a base and
// override individual fields.
type Parameters struct {
	// Strategy selects the spatialization algorithm.
	Strategy Strategy

	// PanLaw is the pan law of the stereo-pan strategy.
	PanLaw PanLaw

	// PanRadius is the circle radius of the circular strategy.
	PanRadius float64

	// PanSpeed is the angular speed of the circular strategy in rad/s.
	PanSpeed float64

	// BassGainDB is the resting gain of the 100 Hz low shelf.
	BassGainDB float64

	// BassModDepthDB is added to the shelf gain scaled by |sin(1.5t)|.
	BassModDepthDB float64

	// ImpulseLengthSeconds is the length of the synthesized reverb impulse.
	ImpulseLengthSeconds float64

	// NormalizeImpulse scales the impulse to a calibrated loudness before
	// convolution. Disable it for a raw, much louder reverb.
	NormalizeImpulse bool

	// CompressorThresholdDB is the level where gain reduction begins.
	CompressorThresholdDB float64

	// CompressorRatio is the input/output slope above the threshold.
	CompressorRatio float64

	// CompressorKneeDB is the width of the soft knee centred on the threshold.
	CompressorKneeDB float64

	// CompressorAttackSeconds is the time constant for increasing reduction.
	CompressorAttackSeconds float64

	// CompressorReleaseSeconds is the time constant for recovering.
	CompressorReleaseSeconds float64
}

// DefaultParameters returns the standard effect settings.
func DefaultParameters() *Parameters {
	return &Parameters{
		Strategy:                 StrategyStereoPan,
		PanLaw:                   PanEqualPower,
		PanRadius:                defaultPanRadius,
		PanSpeed:                 defaultPanSpeed,
		BassGainDB:               defaultBassGainDB,
		BassModDepthDB:           defaultBassModDepthDB,
		ImpulseLengthSeconds:     defaultImpulseSeconds,
		NormalizeImpulse:         true,
		CompressorThresholdDB:    defaultThresholdDB,
		CompressorRatio:          defaultRatio,
		CompressorKneeDB:         defaultKneeDB,
		CompressorAttackSeconds:  defaultAttackSeconds,
		CompressorReleaseSeconds: defaultReleaseSeconds,
	}
}

// Validate checks if the parameters are valid.
func (p *Parameters) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: parameters are nil", ErrInvalidParameter)
	}

	if p.Strategy != StrategyStereoPan && p.Strategy != StrategyCircular {
		return fmt.Errorf("%w: unknown strategy %d", ErrInvalidParameter, int(p.Strategy))
	}

	if _, ok := p.PanLaw.engineLaw(); !ok {
		return fmt.Errorf("%w: unknown pan law %d", ErrInvalidParameter, int(p.PanLaw))
	}

	checks := []struct {
		name     string
		value    float64
		min, max float64
		openMin  bool
	}{
		{"compressor threshold", p.CompressorThresholdDB, minThresholdDB, maxThresholdDB, false},
		{"compressor ratio", p.CompressorRatio, minRatio, maxRatio, false},
		{"compressor knee", p.CompressorKneeDB, 0, maxKneeDB, false},
		{"compressor attack", p.CompressorAttackSeconds, 0, maxTimeSeconds, false},
		{"compressor release", p.CompressorReleaseSeconds, 0, maxTimeSeconds, false},
		{"bass gain", p.BassGainDB, -maxBassDB, maxBassDB, false},
		{"bass modulation depth", p.BassModDepthDB, -maxBassDB, maxBassDB, false},
		{"impulse length", p.ImpulseLengthSeconds, 0, maxImpulseSeconds, true},
		{"pan radius", p.PanRadius, 0, maxPanRadius, true},
		{"pan speed", p.PanSpeed, 0, maxPanSpeed, false},
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, c.name, c.value)
		}
		if c.value > c.max || c.value < c.min || (c.openMin && c.value == c.min) {
			lo := "["
			if c.openMin {
				lo = "("
			}
			return fmt.Errorf("%w: %s must be in %s%v, %v], got %v",
				ErrInvalidParameter, c.name, lo, c.min, c.max, c.value)
		}
	}

	return nil
}

// validateForRate checks the parameters that depend on the signal's rate.
func (p *Parameters) validateForRate(sampleRate int) error {
	if p.Strategy != StrategyStereoPan {
		return nil
	}
	if engine.ImpulseLength(p.ImpulseLengthSeconds, float64(sampleRate)) < 1 {
		return fmt.Errorf("%w: impulse length %vs is shorter than one sample at %d Hz",
			ErrInvalidParameter, p.ImpulseLengthSeconds, sampleRate)
	}
	return nil
}
