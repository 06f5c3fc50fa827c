package engine

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTConvolver performs overlap-save FFT linear convolution for long kernels.
// This is O(N log N) vs O(N×M) for direct convolution.
//
// Overlap-save method:
//  1. Output block s needs input samples [s-(kernelLen-1), s+blockSize)
//  2. Each block produces blockSize = fftSize - kernelLen + 1 valid output samples
//  3. The first kernelLen-1 circular outputs of each block are discarded (wrap)
type FFTConvolver struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int // Valid output samples per block = fftSize - kernelLen + 1

	// Precomputed kernel in frequency domain
	kernelFFT []complex128
	kernelLen int
	scale     float64 // 1/fftSize for IFFT normalization (gonum doesn't normalize)

	// Working buffers, reused across blocks
	signalBlock []float64
	signalFFT   []complex128
	productFFT  []complex128
	ifftResult  []float64
}

// NewFFTConvolver creates a convolver for the given kernel.
// The kernel is transformed once and reused for every block.
func NewFFTConvolver(kernel []float64) *FFTConvolver {
	kernelLen := len(kernel)
	if kernelLen == 0 {
		return nil
	}

	// Next power of 2 >= 2*kernelLen keeps at least half of every block valid
	fftSize := defaultFFTBlockSize
	for fftSize < 2*kernelLen {
		fftSize *= 2
	}

	fft := fourier.NewFFT(fftSize)

	kernelPadded := make([]float64, fftSize)
	copy(kernelPadded, kernel)
	kernelFFT := fft.Coefficients(nil, kernelPadded)

	fftLen := fftSize/fftHermitianDivisor + 1

	return &FFTConvolver{
		fft:         fft,
		fftSize:     fftSize,
		blockSize:   fftSize - kernelLen + 1,
		kernelFFT:   kernelFFT,
		kernelLen:   kernelLen,
		scale:       1.0 / float64(fftSize),
		signalBlock: make([]float64, fftSize),
		signalFFT:   make([]complex128, fftLen),
		productFFT:  make([]complex128, fftLen),
		ifftResult:  make([]float64, fftSize),
	}
}

// Convolve writes the first len(dst) samples of the linear convolution
// signal*kernel into dst: dst[n] = Σ kernel[k]·signal[n-k].
// len(dst) may be anything up to len(signal)+kernelLen-1.
func (c *FFTConvolver) Convolve(dst, signal []float64) {
	outputLen := len(dst)
	overlap := c.kernelLen - 1

	for outIdx := 0; outIdx < outputLen; outIdx += c.blockSize {
		clear(c.signalBlock)

		// Block covers signal[outIdx-overlap : outIdx-overlap+fftSize], zero outside
		start := outIdx - overlap
		from := max(start, 0)
		to := min(start+c.fftSize, len(signal))
		if from < to {
			copy(c.signalBlock[from-start:], signal[from:to])
		}

		c.signalFFT = c.fft.Coefficients(c.signalFFT, c.signalBlock)
		c128.Mul(c.productFFT, c.signalFFT, c.kernelFFT)
		c.ifftResult = c.fft.Sequence(c.ifftResult, c.productFFT)
		f64.Scale(c.ifftResult, c.ifftResult, c.scale)

		valid := min(c.blockSize, outputLen-outIdx)
		copy(dst[outIdx:outIdx+valid], c.ifftResult[overlap:overlap+valid])
	}
}

// ConvolveTruncated writes the first len(dst) samples of signal*kernel
// into dst, using FFT convolution for long kernels and direct SIMD
// convolution for short ones. The convolution tail past len(dst) is dropped.
func ConvolveTruncated(dst, signal, kernel []float64) {
	if len(dst) == 0 {
		return
	}
	if len(kernel) == 0 {
		clear(dst)
		return
	}

	if len(kernel) < minKernelForFFT {
		convolveDirect(dst, signal, kernel)
		return
	}

	NewFFTConvolver(kernel).Convolve(dst, signal)
}

// convolveDirect maps linear convolution onto f64.ConvolveValid, which
// computes dst[i] = Σ signal[i+k]·kernel[k], by front-padding the signal
// with kernelLen-1 zeros and reversing the kernel.
func convolveDirect(dst, signal, kernel []float64) {
	overlap := len(kernel) - 1

	padded := make([]float64, len(dst)+overlap)
	copy(padded[overlap:], signal[:min(len(signal), len(dst))])

	reversed := make([]float64, len(kernel))
	for i, v := range kernel {
		reversed[len(kernel)-1-i] = v
	}

	f64.ConvolveValid(dst, padded, reversed)
}
