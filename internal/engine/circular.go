package engine

import "math"

const (
	degreesPerRadian = 180 / math.Pi
	quarterTurn      = 90.0
	halfTurn         = 180.0
)

// CircularPanner moves a source around the listener on a horizontal circle
// and renders it with an equal-power azimuth panner plus inverse distance
// attenuation. The listener sits at the origin facing -z with +y up.
type CircularPanner struct {
	Radius      float64 // metres
	Speed       float64 // rad/s
	RefDistance float64
	MaxDistance float64
	Rolloff     float64
}

// NewCircularPanner returns a panner with the default distance model.
func NewCircularPanner(radius, speed float64) *CircularPanner {
	return &CircularPanner{
		Radius:      radius,
		Speed:       speed,
		RefDistance: DefaultRefDistance,
		MaxDistance: DefaultMaxDistance,
		Rolloff:     DefaultRolloff,
	}
}

// Position returns the source position (x, z) at time t.
func (p *CircularPanner) Position(t float64) (x, z float64) {
	return p.Radius * math.Cos(p.Speed*t), p.Radius * math.Sin(p.Speed*t)
}

// Azimuth returns the source azimuth in degrees for a position in the
// horizontal plane: 0 straight ahead, +90 hard right, -90 hard left and
// ±180 behind. The origin maps to 0.
func Azimuth(x, z float64) float64 {
	d := math.Hypot(x, z)
	if d == 0 {
		return 0
	}

	// Angle from the listener's right vector (+x)
	az := math.Acos(min(max(x/d, -1), 1)) * degreesPerRadian

	// Behind the listener when the front component (-z) is negative
	if -z/d < 0 {
		az = 2*halfTurn - az
	}

	if az >= 0 && az <= 270 {
		return quarterTurn - az
	}
	return 450 - az
}

// DistanceGain applies the inverse distance model:
// ref / (ref + rolloff·(max(d, ref) - ref)).
func (p *CircularPanner) DistanceGain(d float64) float64 {
	ref := p.RefDistance
	if ref <= 0 {
		return 1
	}
	d = max(d, ref)
	return ref / (ref + p.Rolloff*(d-ref))
}

// foldAzimuth maps rear azimuths onto the frontal half plane [-90, 90].
func foldAzimuth(az float64) float64 {
	az = min(max(az, -halfTurn), halfTurn)
	switch {
	case az < -quarterTurn:
		return -halfTurn - az
	case az > quarterTurn:
		return halfTurn - az
	default:
		return az
	}
}

// Process renders the moving source into a stereo pair. A single input
// channel uses the mono pan formula; two or more use the stereo cross-feed
// formula on the first two channels. Position is held between 0.05 s ticks.
func (p *CircularPanner) Process(channels [][]float64, sampleRate float64) [2][]float64 {
	var out [2][]float64
	if len(channels) == 0 {
		return out
	}

	frames := len(channels[0])
	out[0] = make([]float64, frames)
	out[1] = make([]float64, frames)

	duration := float64(frames) / sampleRate
	curve := SampleCurve(duration, AutomationStep, func(t float64) float64 { return t })

	mono := len(channels) == 1
	curve.Segments(sampleRate, frames, func(start, end int, t float64) {
		x, z := p.Position(t)
		az := foldAzimuth(Azimuth(x, z))
		dist := p.DistanceGain(math.Hypot(x, z))

		if mono {
			frac := (az + quarterTurn) / halfTurn
			gL := math.Cos(frac*math.Pi/2) * dist
			gR := math.Sin(frac*math.Pi/2) * dist
			src := channels[0]
			for i := start; i < end; i++ {
				out[0][i] = src[i] * gL
				out[1][i] = src[i] * gR
			}
			return
		}

		inL, inR := channels[0], channels[1]
		if az <= 0 {
			frac := (az + quarterTurn) / quarterTurn
			gL := math.Cos(frac * math.Pi / 2)
			gR := math.Sin(frac * math.Pi / 2)
			for i := start; i < end; i++ {
				out[0][i] = (inL[i] + inR[i]*gL) * dist
				out[1][i] = inR[i] * gR * dist
			}
			return
		}

		frac := az / quarterTurn
		gL := math.Cos(frac * math.Pi / 2)
		gR := math.Sin(frac * math.Pi / 2)
		for i := start; i < end; i++ {
			out[0][i] = inL[i] * gL * dist
			out[1][i] = (inR[i] + inL[i]*gR) * dist
		}
	})

	return out
}
