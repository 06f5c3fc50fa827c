package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	audio8d "github.com/tphakala/go-audio-8d"
)

const wavFormatPCM = 1

var (
	// ErrNotWAV indicates the stream has no RIFF/WAVE header.
	ErrNotWAV = errors.New("not a WAV file")

	// ErrUnsupportedWAV indicates a WAV encoding other than 8/16/24/32-bit integer PCM.
	ErrUnsupportedWAV = errors.New("unsupported WAV encoding")
)

// WAVDecoder decodes integer PCM WAV files with go-audio/wav.
type WAVDecoder struct{}

// Decode reads the whole stream. go-audio/wav needs to seek, so non-seekable
// readers are buffered in memory first.
func (WAVDecoder) Decode(r io.Reader) (*audio8d.Signal, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, decodeError(FormatWAV, err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, decodeError(FormatWAV, ErrNotWAV)
	}

	bitDepth := int(dec.BitDepth)
	if dec.WavAudioFormat != wavFormatPCM || !supportedIntDepth(bitDepth) {
		return nil, decodeError(FormatWAV, fmt.Errorf("%w: format %d, %d-bit",
			ErrUnsupportedWAV, dec.WavAudioFormat, bitDepth))
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, decodeError(FormatWAV, err)
	}

	return intBufferToSignal(buf.Data, buf.Format, bitDepth, bitDepth == bitDepth8), nil
}

// readSeeker returns r itself when it can seek, or an in-memory copy.
func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return bytes.NewReader(data), nil
}
