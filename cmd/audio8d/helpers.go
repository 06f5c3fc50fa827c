package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	audio8d "github.com/tphakala/go-audio-8d"
	"github.com/tphakala/go-audio-8d/internal/config"
	"github.com/tphakala/go-audio-8d/internal/decode"
)

const (
	outputDirPerm  = 0o755
	outputFilePerm = 0o644
)

var (
	// errNotAudio rejects inputs without a known audio extension.
	errNotAudio = errors.New("please select an audio file")

	// errOutputCollision rejects an input whose output name is already taken
	// by an earlier input in the same run.
	errOutputCollision = errors.New("output name already in use")
)

// convertStats summarizes a conversion run.
type convertStats struct {
	converted    int
	failed       int
	audioSeconds float64
}

// newLogger returns a text logger at Info level, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// loadSignal checks that path names an audio file, decodes it and converts
// it to the context rate when rate is positive.
func loadSignal(path string, rate int) (*audio8d.Signal, error) {
	format, err := decode.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, errNotAudio, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sig, err := decode.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if rate > 0 && rate != sig.SampleRate {
		sig, err = decode.Resample(sig, rate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return sig, nil
}

// writeOutput writes encoded WAV data as dir/8D_<name>.wav and returns the
// path written.
func writeOutput(dir, inputPath string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, outputDirPerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, audio8d.OutputName(inputPath))
	if err := os.WriteFile(path, data, outputFilePerm); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return path, nil
}

// convertFiles decodes every readable input, processes the batch and writes
// each result. A failing file is logged and counted; it never stops the
// others.
func convertFiles(paths []string, cfg config.Config, params *audio8d.Parameters, opts []audio8d.Option, logger *logrus.Logger) (*convertStats, error) {
	eng, err := audio8d.New(params, append(opts, audio8d.WithLogger(logger))...)
	if err != nil {
		return nil, err
	}

	stats := &convertStats{}
	inputs := make([]*audio8d.Signal, 0, len(paths))
	names := make([]string, 0, len(paths))
	claimed := make(map[string]string, len(paths))

	for _, path := range paths {
		outName := audio8d.OutputName(path)
		if prev, ok := claimed[outName]; ok {
			err := fmt.Errorf("%s: %w: %s is also produced by %s", path, errOutputCollision, outName, prev)
			logger.WithError(err).WithField("file", path).Error("Skipping input")
			stats.failed++
			continue
		}

		sig, err := loadSignal(path, cfg.Rate)
		if err != nil {
			logger.WithError(err).WithField("file", path).Error("Skipping input")
			stats.failed++
			continue
		}
		logger.WithFields(logrus.Fields{
			"file":     path,
			"rate":     sig.SampleRate,
			"channels": sig.NumChannels(),
			"length":   sig.Length(),
		}).Debug("Decoded input")

		claimed[outName] = path
		inputs = append(inputs, sig)
		names = append(names, path)
	}

	for _, res := range eng.ProcessBatch(inputs, cfg.Workers) {
		name := names[res.Index]
		if res.Err != nil {
			logger.WithError(res.Err).WithField("file", name).Error("Conversion failed")
			stats.failed++
			continue
		}

		out, err := writeOutput(cfg.OutputDir, name, res.Encoded)
		if err != nil {
			logger.WithError(err).WithField("file", name).Error("Conversion failed")
			stats.failed++
			continue
		}

		stats.converted++
		stats.audioSeconds += res.Signal.Duration()
		logger.WithFields(logrus.Fields{
			"file":   name,
			"output": out,
			"bytes":  len(res.Encoded),
		}).Info("Converted")
	}

	return stats, nil
}
