// Command audio8d converts audio files into 8D_<name>.wav files with a
// rotating spatial effect.
//
// Usage:
//
//	audio8d song.mp3                          # writes ./8D_song.wav
//	audio8d -out processed -workers 4 *.wav   # batch conversion
//	audio8d -strategy circular -speed 0.5 voice.ogg
//	audio8d -seed 42 -rate 48000 track.aiff   # reproducible reverb at 48 kHz
//
// Defaults come from AUDIO8D_* environment variables; flags override them.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-8d/internal/config"
)

const minRequiredArgs = 1

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg := config.Load()

	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory for 8D_<name>.wav files")
	flag.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "Spatialization strategy: stereo-pan, circular")
	flag.StringVar(&cfg.PanLaw, "law", cfg.PanLaw, "Pan law: equal-power, linear")
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "Reverb noise seed (empty for a random impulse)")
	flag.IntVar(&cfg.Rate, "rate", cfg.Rate, "Context sample rate in Hz (0 keeps each file's rate)")
	flag.Float64Var(&cfg.ImpulseSeconds, "impulse", cfg.ImpulseSeconds, "Reverb impulse length in seconds")
	flag.Float64Var(&cfg.BassGainDB, "bass", cfg.BassGainDB, "Bass shelf gain in dB")
	flag.Float64Var(&cfg.BassModDB, "bass-mod", cfg.BassModDB, "Bass shelf modulation depth in dB")
	flag.Float64Var(&cfg.ThresholdDB, "threshold", cfg.ThresholdDB, "Compressor threshold in dBFS")
	flag.Float64Var(&cfg.Ratio, "ratio", cfg.Ratio, "Compressor ratio")
	flag.Float64Var(&cfg.KneeDB, "knee", cfg.KneeDB, "Compressor knee width in dB")
	flag.Float64Var(&cfg.AttackSeconds, "attack", cfg.AttackSeconds, "Compressor attack in seconds")
	flag.Float64Var(&cfg.ReleaseSeconds, "release", cfg.ReleaseSeconds, "Compressor release in seconds")
	flag.Float64Var(&cfg.Radius, "radius", cfg.Radius, "Circle radius for the circular strategy")
	flag.Float64Var(&cfg.Speed, "speed", cfg.Speed, "Angular speed in rad/s for the circular strategy")
	flag.BoolVar(&cfg.NoNormalize, "no-normalize", cfg.NoNormalize, "Convolve with the raw, unnormalized impulse")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers (0 for GOMAXPROCS)")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.(wav|aiff|mp3|ogg)...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s song.mp3                         # Writes ./8D_song.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -out processed *.wav             # Batch conversion\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -strategy circular voice.ogg     # Legacy circular panner\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	params, err := cfg.Parameters()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	logger := newLogger(os.Stderr, cfg.Verbose)
	logger.WithFields(logrus.Fields{
		"inputs":   len(args),
		"out":      cfg.OutputDir,
		"strategy": params.Strategy,
		"workers":  cfg.Workers,
	}).Debug("Starting conversion")

	start := time.Now()
	stats, err := convertFiles(args, cfg, params, opts, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Converted %d of %d files into %s\n", stats.converted, len(args), cfg.OutputDir)
	if stats.audioSeconds > 0 {
		fmt.Printf("  Audio: %.2fs, Duration: %.2fs, Speed: %.1fx realtime\n",
			stats.audioSeconds, elapsed.Seconds(), stats.audioSeconds/elapsed.Seconds())
	}

	if stats.failed > 0 {
		return fmt.Errorf("%d of %d files failed", stats.failed, len(args))
	}
	return nil
}
