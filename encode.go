package audio8d

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/tphakala/simd/f64"
)

const encodeBufferSize = 64 * 1024

// wavLayout holds the derived header fields of a signal.
type wavLayout struct {
	channels   int
	sampleRate int
	frames     int
	blockAlign uint64
	byteRate   uint64
	dataSize   uint64
}

func layoutFor(sig *Signal) (wavLayout, error) {
	if err := sig.Validate(); err != nil {
		return wavLayout{}, err
	}

	l := wavLayout{
		channels:   sig.NumChannels(),
		sampleRate: sig.SampleRate,
		frames:     sig.Frames(),
	}
	l.blockAlign = uint64(l.channels) * wavBytesPerSample
	l.byteRate = uint64(l.sampleRate) * l.blockAlign
	l.dataSize = uint64(l.frames) * l.blockAlign

	switch {
	case l.channels > maxWAVChannels:
		return wavLayout{}, fmt.Errorf("%w: %d channels exceed the header limit of %d",
			ErrEncoding, l.channels, maxWAVChannels)
	case l.blockAlign > maxWAVChannels:
		return wavLayout{}, fmt.Errorf("%w: block align %d does not fit in 16 bits",
			ErrEncoding, l.blockAlign)
	case uint64(l.sampleRate) > maxUint32:
		return wavLayout{}, fmt.Errorf("%w: sample rate %d does not fit in 32 bits",
			ErrEncoding, l.sampleRate)
	case l.byteRate > maxUint32:
		return wavLayout{}, fmt.Errorf("%w: byte rate %d does not fit in 32 bits",
			ErrEncoding, l.byteRate)
	case l.dataSize+wavRIFFOverhead > maxUint32:
		return wavLayout{}, fmt.Errorf("%w: %d data bytes exceed the RIFF size limit",
			ErrEncoding, l.dataSize)
	}

	return l, nil
}

// header builds the canonical 44-byte PCM header.
func (l wavLayout) header() []byte {
	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(wavRIFFOverhead+l.dataSize))
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavFmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(l.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(l.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(l.byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(l.blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], wavBitsPerSample)

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(l.dataSize))

	return header
}

// Encode serializes sig as a canonical 16-bit PCM WAV file. Equal signals
// always encode to equal bytes.
func Encode(sig *Signal) ([]byte, error) {
	l, err := layoutFor(sig)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(wavHeaderSize + int(l.dataSize))
	if err := writeWAV(&buf, sig, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the same bytes as Encode to w.
func EncodeTo(w io.Writer, sig *Signal) error {
	l, err := layoutFor(sig)
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, encodeBufferSize)
	if err := writeWAV(bw, sig, l); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

func writeWAV(w io.Writer, sig *Signal, l wavLayout) error {
	if _, err := w.Write(l.header()); err != nil {
		return fmt.Errorf("%w: writing header: %w", ErrEncoding, err)
	}

	// Encode in chunks of whole frames to bound scratch memory
	framesPerChunk := max(encodeBufferSize/int(l.blockAlign), 1)
	interleaved := make([]float64, framesPerChunk*l.channels)
	out := make([]byte, framesPerChunk*int(l.blockAlign))

	for start := 0; start < l.frames; start += framesPerChunk {
		end := min(start+framesPerChunk, l.frames)
		n := (end - start) * l.channels

		interleave(interleaved[:n], sig.Channels, start, end)
		for i, v := range interleaved[:n] {
			binary.LittleEndian.PutUint16(out[i*wavBytesPerSample:], uint16(quantize16(v)))
		}

		if _, err := w.Write(out[:n*wavBytesPerSample]); err != nil {
			return fmt.Errorf("%w: writing samples: %w", ErrEncoding, err)
		}
	}

	return nil
}

// interleave packs frames [start, end) of channels into dst.
func interleave(dst []float64, channels [][]float64, start, end int) {
	if len(channels) == stereoChannels {
		f64.Interleave2(dst, channels[0][start:end], channels[1][start:end])
		return
	}

	numChannels := len(channels)
	for i := start; i < end; i++ {
		base := (i - start) * numChannels
		for ch, samples := range channels {
			dst[base+ch] = samples[i]
		}
	}
}

// quantize16 converts a sample to int16: clamp to [-1, 1], scale negative
// values by 32768 and non-negative values by 32767, truncate toward zero.
func quantize16(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= -1:
		return math.MinInt16
	case v >= 1:
		return math.MaxInt16
	case v < 0:
		return int16(v * pcmNegativeScale)
	default:
		return int16(v * pcmPositiveScale)
	}
}

// OutputName returns the processed file name for an input path:
// "8D_" + base name without extension + ".wav".
func OutputName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return OutputPrefix + name + OutputExtension
}
