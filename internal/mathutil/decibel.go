// Package mathutil provides small numeric helpers shared by the DSP stages.
package mathutil

import "math"

// DBToLinear converts a decibel value to a linear amplitude ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(decibelBase, db/amplitudeDBFactor)
}

// LinearToDB converts a linear amplitude to decibels.
// Amplitudes <= 0 map to SilenceFloorDB instead of -Inf.
func LinearToDB(amplitude float64) float64 {
	if amplitude <= 0 {
		return SilenceFloorDB
	}
	db := amplitudeDBFactor * math.Log10(amplitude)
	if db < SilenceFloorDB {
		return SilenceFloorDB
	}
	return db
}

// Clamp limits v to [lo, hi]. NaN is mapped to 0.
func Clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SmoothingCoeff returns the one-pole coefficient exp(-1/(tau*sampleRate))
// for a time constant tau in seconds. A zero time constant yields 0, which
// makes the smoother follow its target instantly.
func SmoothingCoeff(tau, sampleRate float64) float64 {
	if tau <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1.0 / (tau * sampleRate))
}
