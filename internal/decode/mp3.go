package decode

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	audio8d "github.com/tphakala/go-audio-8d"
)

// go-mp3 always produces interleaved 16-bit stereo
const mp3Channels = 2

// MP3Decoder decodes MPEG-1/2 layer III streams with go-mp3.
type MP3Decoder struct{}

// Decode reads the whole stream.
func (MP3Decoder) Decode(r io.Reader) (*audio8d.Signal, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, decodeError(FormatMP3, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, decodeError(FormatMP3, fmt.Errorf("reading frames: %w", err))
	}

	return &audio8d.Signal{
		SampleRate: dec.SampleRate(),
		Channels:   audio8d.Deinterleave(int16LEToFloat(pcm), mp3Channels),
	}, nil
}
