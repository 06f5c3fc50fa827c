package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audio8d "github.com/tphakala/go-audio-8d"
	"github.com/tphakala/go-audio-8d/internal/config"
	"github.com/tphakala/go-audio-8d/internal/testutil"
)

// writeTestWAV writes a short mono sine as a 16-bit WAV file.
func writeTestWAV(t *testing.T, dir, name string, sampleRate, frames int) string {
	t.Helper()
	sig, err := audio8d.NewSignal(sampleRate, [][]float64{testutil.Sine(440, float64(sampleRate), 0.5, frames)})
	require.NoError(t, err)

	data, err := audio8d.Encode(sig)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func quietCLILogger() *logrus.Logger {
	return newLogger(io.Discard, false)
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, logrus.InfoLevel, newLogger(&buf, false).GetLevel())

	logger := newLogger(&buf, true)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("file", "a.wav").Debug("Decoded input")
	assert.Contains(t, buf.String(), "file=a.wav")
}

func TestLoadSignal_FileNotFound(t *testing.T) {
	_, err := loadSignal("/nonexistent/file.wav", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestLoadSignal_NotAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := loadSignal(path, 0)
	assert.ErrorIs(t, err, errNotAudio)
}

func TestLoadSignal_InvalidWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := loadSignal(path, 0)
	assert.ErrorIs(t, err, audio8d.ErrDecode)
}

func TestLoadSignal_Resamples(t *testing.T) {
	path := writeTestWAV(t, t.TempDir(), "tone.wav", 22050, 2205)

	sig, err := loadSignal(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 22050, sig.SampleRate)
	assert.Equal(t, 2205, sig.Frames())

	sig, err = loadSignal(path, 44100)
	require.NoError(t, err)
	assert.Equal(t, 44100, sig.SampleRate)
	assert.Equal(t, 4410, sig.Frames())
}

func TestWriteOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := writeOutput(dir, "/music/My Song.mp3", []byte("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "8D_My Song.wav"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)
}

func TestWriteOutput_InvalidDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := writeOutput(filepath.Join(file, "sub"), "in.wav", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}

func TestConvertFiles(t *testing.T) {
	in := t.TempDir()
	good := writeTestWAV(t, in, "tone.wav", 8000, 4000)
	bad := filepath.Join(in, "broken.wav")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	text := filepath.Join(in, "readme.txt")
	require.NoError(t, os.WriteFile(text, []byte("text"), 0o644))

	cfg := config.Load()
	cfg.OutputDir = t.TempDir()
	cfg.Workers = 2
	params, err := cfg.Parameters()
	require.NoError(t, err)

	stats, err := convertFiles([]string{bad, good, text}, cfg, params, []audio8d.Option{audio8d.WithSeed(1)}, quietCLILogger())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.converted)
	assert.Equal(t, 2, stats.failed)
	assert.InDelta(t, 0.5, stats.audioSeconds, 1e-9)

	f, err := os.Open(filepath.Join(cfg.OutputDir, "8D_tone.wav"))
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint16(2), dec.NumChans)
	assert.Equal(t, uint32(8000), dec.SampleRate)
}

func TestConvertFiles_InvalidOption(t *testing.T) {
	cfg := config.Load()
	params, err := cfg.Parameters()
	require.NoError(t, err)

	_, err = convertFiles(nil, cfg, params, []audio8d.Option{audio8d.WithLogger(nil)}, quietCLILogger())
	assert.ErrorIs(t, err, audio8d.ErrInvalidParameter)
}

func TestConvertFiles_OutputNameCollision(t *testing.T) {
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	dirB := filepath.Join(root, "b")
	require.NoError(t, os.MkdirAll(dirA, 0o755))
	require.NoError(t, os.MkdirAll(dirB, 0o755))

	first := writeTestWAV(t, dirA, "song.wav", 8000, 800)
	second := writeTestWAV(t, dirB, "song.wav", 8000, 1600)

	cfg := config.Load()
	cfg.OutputDir = t.TempDir()
	params, err := cfg.Parameters()
	require.NoError(t, err)

	var logs bytes.Buffer
	stats, err := convertFiles([]string{first, second}, cfg, params, []audio8d.Option{audio8d.WithSeed(1)}, newLogger(&logs, false))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.converted)
	assert.Equal(t, 1, stats.failed)
	assert.Contains(t, logs.String(), errOutputCollision.Error())

	// The first input keeps the name
	assert.InDelta(t, 0.1, stats.audioSeconds, 1e-9)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "8D_song.wav"))
}

func TestConvertFiles_FailedInputFreesName(t *testing.T) {
	root := t.TempDir()
	broken := filepath.Join(root, "x", "song.wav")
	require.NoError(t, os.MkdirAll(filepath.Dir(broken), 0o755))
	require.NoError(t, os.WriteFile(broken, []byte("garbage"), 0o644))
	good := writeTestWAV(t, root, "song.wav", 8000, 800)

	cfg := config.Load()
	cfg.OutputDir = t.TempDir()
	params, err := cfg.Parameters()
	require.NoError(t, err)

	stats, err := convertFiles([]string{broken, good}, cfg, params, []audio8d.Option{audio8d.WithSeed(1)}, quietCLILogger())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.converted)
	assert.Equal(t, 1, stats.failed)
}
