package decode

import (
	"io"

	"github.com/jfreymuth/oggvorbis"

	audio8d "github.com/tphakala/go-audio-8d"
)

// OggDecoder decodes Ogg Vorbis streams with oggvorbis.
type OggDecoder struct{}

// Decode reads the whole stream.
func (OggDecoder) Decode(r io.Reader) (*audio8d.Signal, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, decodeError(FormatOGG, err)
	}
	return float32ToSignal(data, format.SampleRate, format.Channels), nil
}
