// Command analyze-shelf prints the magnitude response of the modulated bass
// shelf at each automation tick, for checking the time-varying filter.
//
// Usage:
//
//	analyze-shelf -seconds 2 -bass 4 -bass-mod 2 -rate 44100
package main

import (
	"flag"
	"fmt"

	"github.com/tphakala/go-audio-8d/internal/engine"
	"github.com/tphakala/go-audio-8d/internal/filter"
)

const (
	defaultSeconds    = 1.0
	defaultBassGainDB = 4.0
	defaultBassModDB  = 2.0
	defaultSampleRate = 44100.0
)

// Measured frequencies in Hz, from well below the corner to well above it.
var testFrequencies = []float64{20, 50, 100, 200, 500, 1000, 5000}

func main() {
	seconds := flag.Float64("seconds", defaultSeconds, "Automation span to analyze in seconds")
	gainDB := flag.Float64("bass", defaultBassGainDB, "Bass shelf gain in dB")
	depthDB := flag.Float64("bass-mod", defaultBassModDB, "Bass shelf modulation depth in dB")
	rate := flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
	flag.Parse()

	fmt.Println("=== Analyzing Bass Shelf Automation ===")
	fmt.Printf("Corner: %.0f Hz, Q: %.4f, Rate: %.0f Hz\n\n", engine.ShelfFrequency, filter.ShelfSlopeQ, *rate)

	curve := engine.BassGainCurve(*seconds, *gainDB, *depthDB)
	if len(curve.Values) == 0 {
		fmt.Println("No automation ticks in range")
		return
	}

	fmt.Printf("%6s %8s %8s", "tick", "time", "gain")
	for _, f := range testFrequencies {
		fmt.Printf(" %8.0fHz", f)
	}
	fmt.Println()

	var maxGain, minGain float64
	for k, g := range curve.Values {
		c := filter.LowShelf(engine.ShelfFrequency, g, filter.ShelfSlopeQ, *rate)

		fmt.Printf("%6d %7.2fs %7.2fdB", k, curve.TickTime(k), g)
		for _, f := range testFrequencies {
			fmt.Printf(" %8.2fdB", c.MagnitudeDB(f, *rate))
		}
		fmt.Println()

		if k == 0 || g > maxGain {
			maxGain = g
		}
		if k == 0 || g < minGain {
			minGain = g
		}
	}

	fmt.Printf("\nTicks: %d, Gain range: %.2f dB to %.2f dB\n", len(curve.Values), minGain, maxGain)
	fmt.Printf("First tick frame: %d, Last tick frame: %d\n",
		curve.TickFrame(0, *rate), curve.TickFrame(len(curve.Values)-1, *rate))
}
