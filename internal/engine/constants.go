package engine

// Automation constants
const (
	// AutomationStep is the spacing of automation ticks in seconds.
	AutomationStep = 0.05

	// tickEpsilon absorbs float error when converting tick times to frames,
	// e.g. 0.05*44100 evaluating to 2205.0000000000005.
	tickEpsilon = 1e-7
)

// Bass shelf constants
const (
	// ShelfFrequency is the low-shelf corner frequency in Hz.
	ShelfFrequency = 100.0

	// BassModRate is the angular rate of the shelf gain modulation (rad/s).
	BassModRate = 1.5
)

// Pan automation constants
const (
	// PanDepth scales both pan LFOs so neither source reaches a hard pan.
	PanDepth = 0.9

	// LeftPanRate and RightPanRate are the angular rates (rad/s) of the
	// left-source sine and right-source cosine pan LFOs.
	LeftPanRate  = 2.0
	RightPanRate = 2.2
)

// Impulse response synthesis constants
const (
	// impulseDecayDivisor sets the decay time constant to length/10 samples.
	impulseDecayDivisor = 10.0

	// impulseModRate and impulseModDepth shape the sinusoidal ripple
	// applied on top of the exponential decay.
	impulseModRate  = 0.1
	impulseModDepth = 0.2

	// Convolver normalization, matching the host audio convolver.
	normGainCalibration           = 0.00125
	normGainCalibrationSampleRate = 44100.0
	normMinPower                  = 0.000125
)

// FFT convolution constants.
const (
	// Minimum kernel length to use FFT convolution (below this, direct is faster).
	minKernelForFFT = 64

	// Default FFT block size (power of 2 for efficiency)
	defaultFFTBlockSize = 512

	// fftHermitianDivisor is used to calculate unique frequency bins in real FFT.
	// Due to Hermitian symmetry, a real FFT of size N has N/2 + 1 unique complex coefficients.
	fftHermitianDivisor = 2
)

// Circular panner constants (distance model "inverse").
const (
	DefaultRefDistance = 1.0
	DefaultMaxDistance = 10.0
	DefaultRolloff     = 0.8
)

// Cubic (Hermite) interpolation constants
const (
	// Hermite basis coefficients for y = ((a*x + b)*x + c)*x + d
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)
