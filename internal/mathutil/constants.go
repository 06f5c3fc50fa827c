package mathutil

// Decibel conversion constants
const (
	// amplitudeDBFactor converts between amplitude ratios and decibels: dB = 20*log10(a)
	amplitudeDBFactor = 20.0

	// decibelBase is the logarithm base used by decibel conversions
	decibelBase = 10.0

	// SilenceFloorDB is returned by LinearToDB for zero or negative amplitudes.
	// It sits well below the 16-bit noise floor (-96 dB) so gain computers
	// treat it as silence.
	SilenceFloorDB = -200.0
)
