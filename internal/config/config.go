// Package config loads the audio8d command's defaults from AUDIO8D_*
// environment variables. Command-line flags override these values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	audio8d "github.com/tphakala/go-audio-8d"
)

const envPrefix = "AUDIO8D_"

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Output
	OutputDir string
	Workers   int // 0 means GOMAXPROCS
	Rate      int // context sample rate, 0 keeps the file's rate
	Verbose   bool

	// Effect
	Strategy       string
	PanLaw         string
	Seed           string // empty draws a fresh seed per run
	ImpulseSeconds float64
	NoNormalize    bool
	BassGainDB     float64
	BassModDB      float64
	ThresholdDB    float64
	Ratio          float64
	KneeDB         float64
	AttackSeconds  float64
	ReleaseSeconds float64
	Radius         float64
	Speed          float64
}

// Load reads configuration from environment variables with defaults taken
// from audio8d.DefaultParameters.
func Load() Config {
	d := audio8d.DefaultParameters()

	return Config{
		OutputDir: envStr("OUT", "."),
		Workers:   envInt("WORKERS", 0),
		Rate:      envInt("RATE", 0),
		Verbose:   envBool("VERBOSE", false),

		Strategy:       envStr("STRATEGY", d.Strategy.String()),
		PanLaw:         envStr("PAN_LAW", d.PanLaw.String()),
		Seed:           envStr("SEED", ""),
		ImpulseSeconds: envFloat("IMPULSE_SECONDS", d.ImpulseLengthSeconds),
		NoNormalize:    envBool("NO_NORMALIZE", !d.NormalizeImpulse),
		BassGainDB:     envFloat("BASS_GAIN_DB", d.BassGainDB),
		BassModDB:      envFloat("BASS_MOD_DB", d.BassModDepthDB),
		ThresholdDB:    envFloat("THRESHOLD_DB", d.CompressorThresholdDB),
		Ratio:          envFloat("RATIO", d.CompressorRatio),
		KneeDB:         envFloat("KNEE_DB", d.CompressorKneeDB),
		AttackSeconds:  envFloat("ATTACK_SECONDS", d.CompressorAttackSeconds),
		ReleaseSeconds: envFloat("RELEASE_SECONDS", d.CompressorReleaseSeconds),
		Radius:         envFloat("RADIUS", d.PanRadius),
		Speed:          envFloat("SPEED", d.PanSpeed),
	}
}

// Parameters converts the effect settings and validates them.
func (c Config) Parameters() (*audio8d.Parameters, error) {
	strategy, err := audio8d.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	law, err := audio8d.ParsePanLaw(c.PanLaw)
	if err != nil {
		return nil, err
	}

	p := &audio8d.Parameters{
		Strategy:                 strategy,
		PanLaw:                   law,
		PanRadius:                c.Radius,
		PanSpeed:                 c.Speed,
		BassGainDB:               c.BassGainDB,
		BassModDepthDB:           c.BassModDB,
		ImpulseLengthSeconds:     c.ImpulseSeconds,
		NormalizeImpulse:         !c.NoNormalize,
		CompressorThresholdDB:    c.ThresholdDB,
		CompressorRatio:          c.Ratio,
		CompressorKneeDB:         c.KneeDB,
		CompressorAttackSeconds:  c.AttackSeconds,
		CompressorReleaseSeconds: c.ReleaseSeconds,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Options returns the engine options implied by the configuration.
func (c Config) Options() ([]audio8d.Option, error) {
	var opts []audio8d.Option

	if s := strings.TrimSpace(c.Seed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: seed %q: %w", audio8d.ErrInvalidParameter, c.Seed, err)
		}
		opts = append(opts, audio8d.WithSeed(seed))
	}

	return opts, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(envPrefix + key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(envPrefix + key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
