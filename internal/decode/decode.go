// Package decode turns encoded audio files into planar signals for the
// effect engine. Decoders are looked up by format key in a Registry; every
// failure wraps audio8d.ErrDecode.
package decode

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	audio8d "github.com/tphakala/go-audio-8d"
)

// Format keys of the built-in decoders.
const (
	FormatWAV  = "wav"
	FormatAIFF = "aiff"
	FormatMP3  = "mp3"
	FormatOGG  = "ogg"
)

// ErrUnsupportedFormat indicates no decoder is registered for a format.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// extensions maps lower-case file extensions to format keys.
var extensions = map[string]string{
	".wav":  FormatWAV,
	".wave": FormatWAV,
	".aif":  FormatAIFF,
	".aiff": FormatAIFF,
	".aifc": FormatAIFF,
	".mp3":  FormatMP3,
	".ogg":  FormatOGG,
	".oga":  FormatOGG,
}

// Decoder decodes a complete stream into a signal.
type Decoder interface {
	Decode(r io.Reader) (*audio8d.Signal, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (*audio8d.Signal, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) (*audio8d.Signal, error) { return f(r) }

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// NewDefaultRegistry returns a registry with the wav, aiff, mp3 and ogg decoders.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FormatWAV, WAVDecoder{})
	r.Register(FormatAIFF, AIFFDecoder{})
	r.Register(FormatMP3, MP3Decoder{})
	r.Register(FormatOGG, OggDecoder{})
	return r
}

var defaultRegistry = NewDefaultRegistry()

// Register adds or replaces the decoder for format.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

// Get returns the decoder for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// Decode decodes rd with the decoder registered for format and validates
// the result.
func (r *Registry) Decode(rd io.Reader, format string) (*audio8d.Signal, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", audio8d.ErrDecode, ErrUnsupportedFormat, format)
	}

	sig, err := d.Decode(rd)
	if err != nil {
		if errors.Is(err, audio8d.ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", audio8d.ErrDecode, format, err)
	}

	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", audio8d.ErrDecode, format, err)
	}
	return sig, nil
}

// Decode decodes r with the built-in decoder for format.
func Decode(r io.Reader, format string) (*audio8d.Signal, error) {
	return defaultRegistry.Decode(r, format)
}

// FormatFromPath returns the format key for a file's extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %w: extension %q", audio8d.ErrDecode, ErrUnsupportedFormat, ext)
}

// IsAudioPath reports whether path has a known audio extension.
func IsAudioPath(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// decodeError wraps a codec failure in audio8d.ErrDecode.
func decodeError(format string, err error) error {
	return fmt.Errorf("%w: %s: %w", audio8d.ErrDecode, format, err)
}
