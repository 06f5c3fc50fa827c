package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	audio8d "github.com/tphakala/go-audio-8d"
)

const aiffChunkSamples = 4096

var (
	// ErrNotAIFF indicates the stream has no FORM/AIFF header.
	ErrNotAIFF = errors.New("not an AIFF file")

	// ErrUnsupportedAIFF indicates an AIFF bit depth other than 8/16/24/32.
	ErrUnsupportedAIFF = errors.New("unsupported AIFF encoding")
)

// pcmReader is the part of aiff.Decoder used here, so tests can substitute it.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// AIFFDecoder decodes AIFF files with go-audio/aiff.
type AIFFDecoder struct{}

// Decode reads the whole stream.
func (AIFFDecoder) Decode(r io.Reader) (*audio8d.Signal, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, decodeError(FormatAIFF, err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, decodeError(FormatAIFF, ErrNotAIFF)
	}
	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	if !supportedIntDepth(bitDepth) {
		return nil, decodeError(FormatAIFF, fmt.Errorf("%w: %d-bit", ErrUnsupportedAIFF, bitDepth))
	}

	sig, err := readAllPCM(dec, bitDepth)
	if err != nil {
		return nil, decodeError(FormatAIFF, err)
	}
	return sig, nil
}

// readAllPCM drains a chunked PCM reader. AIFF samples are signed at
// every bit depth.
func readAllPCM(dec pcmReader, bitDepth int) (*audio8d.Signal, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: missing format", ErrUnsupportedAIFF)
	}

	chunk := &goaudio.IntBuffer{
		Data:   make([]int, aiffChunkSamples*format.NumChannels),
		Format: format,
	}

	var data []int
	for {
		n, err := dec.PCMBuffer(chunk)
		data = append(data, chunk.Data[:n]...)

		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return intBufferToSignal(data, format, bitDepth, false), nil
}
