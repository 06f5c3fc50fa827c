package audio8d

// Channel constants
const (
	stereoChannels = 2     // Engine output channel count
	maxWAVChannels = 65535 // Largest channel count a WAV header can carry
)

// WAV container constants
const (
	// MediaType is the media type of Encode's output.
	MediaType = "audio/wav"

	// OutputPrefix is prepended to processed file names.
	OutputPrefix = "8D_"

	// OutputExtension is the extension of processed files.
	OutputExtension = ".wav"

	wavHeaderSize     = 44
	wavFmtChunkSize   = 16
	wavRIFFOverhead   = 36 // RIFF size minus data size
	wavFormatPCM      = 1
	wavBitsPerSample  = 16
	wavBytesPerSample = wavBitsPerSample / 8

	// Asymmetric int16 scale: the negative range has one more step
	pcmNegativeScale = 32768.0
	pcmPositiveScale = 32767.0

	maxUint32 = 1<<32 - 1
)

// Parameter defaults
const (
	defaultThresholdDB    = -24.0
	defaultRatio          = 12.0
	defaultKneeDB         = 40.0
	defaultAttackSeconds  = 0.0
	defaultReleaseSeconds = 0.25
	defaultBassGainDB     = 4.0
	defaultBassModDepthDB = 2.0
	defaultImpulseSeconds = 1.0
	defaultPanRadius      = 2.0
	defaultPanSpeed       = 1.0
)

// Parameter limits
const (
	minThresholdDB    = -100.0
	maxThresholdDB    = 0.0
	minRatio          = 1.0
	maxRatio          = 20.0
	maxKneeDB         = 40.0
	maxTimeSeconds    = 1.0
	maxBassDB         = 40.0
	maxImpulseSeconds = 30.0
	maxPanRadius      = 1000.0
	maxPanSpeed       = 1000.0
)
