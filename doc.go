// Package audio8d renders "8D" spatial audio offline and encodes the result
// as canonical 16-bit PCM WAV.
//
// The effect moves each source channel around the stereo field on its own
// trajectory, adds a breathing bass shelf to the left source, places the
// result in a synthesized reverb and glues it together with a
// stereo-linked compressor. Everything runs on whole buffers; there is no
// streaming path.
//
// # Quick Start
//
//	sig, err := audio8d.NewSignal(44100, [][]float64{left, right})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := audio8d.Process(sig, audio8d.DefaultParameters())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	wav, err := audio8d.Encode(out)
//
// For repeated runs, build an [Engine] once and reuse it:
//
//	eng, err := audio8d.New(params, audio8d.WithSeed(42))
//	out, err := eng.Process(sig)
//
// # Strategies
//
//   - [StrategyStereoPan]: bass shelf on the left source, independent pan
//     automation per source, convolution reverb and compression.
//   - [StrategyCircular]: the source circles the listener with equal-power
//     azimuth panning and inverse distance attenuation. No reverb, filter
//     or compressor.
//
// # Determinism
//
// The reverb impulse is noise. Pass [WithSeed] or [WithImpulseResponse] to
// make output bit-identical across runs; otherwise every call draws a new
// impulse from a randomly seeded generator.
//
// # Encoding
//
// [Encode] writes a 44-byte RIFF/WAVE header followed by interleaved
// little-endian int16 frames. Samples are clamped to [-1, 1] and scaled
// asymmetrically (×32768 below zero, ×32767 above) with truncation toward
// zero, so output bytes depend only on the input samples.
//
// # Thread Safety
//
// An [Engine] is immutable after [New] and may be shared by any number of
// goroutines. Each [Engine.Process] call allocates its own buffers.
package audio8d
