package stream

import (
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtx/easing"
	"github.com/matt-g-everett/ledtx/profile"
	"github.com/matt-g-everett/ledtx/property"
	"github.com/matt-g-everett/ledtx/util"
	"github.com/matt-g-everett/ledtx/values"
)

const lutSamples = 64

type particle struct {
	elapsed  time.Duration
	duration time.Duration
	running  bool
}

// progress returns how far through its scintillation the particle is.
func (p *particle) progress() float64 {
	if !p.running || p.duration <= 0 {
		return 0
	}
	return min(1, float64(p.elapsed)/float64(p.duration))
}

// A Twinkle scintillates random pixels of the strip from a background colour
// towards a sparkle colour and back.
type Twinkle struct {
	base
	colour     *property.Property[values.Color]
	background *property.Property[values.Color]
	rate       *property.Property[values.Float]
	duration   *property.Property[values.Float]
	ramp       *property.Property[values.Enum]

	rand      *rand.Rand
	memoizer  util.Memoizer
	particles []particle
}

// NewTwinkle creates an instance of a Twinkle brush using r for randomness.
func NewTwinkle(layer *profile.Layer, r *rand.Rand) (*Twinkle, error) {
	b, err := newBase(layer)
	if err != nil {
		return nil, err
	}

	ramps := make([]values.Enum, 0, len(easing.Functions()))
	for _, fn := range easing.Functions() {
		ramps = append(ramps, values.Enum(fn.String()))
	}

	t := new(Twinkle)
	t.base = b
	t.rand = r
	t.colour = values.NewColor(values.Color{R: 0.5, G: 0.5, B: 0.5})
	t.background = values.NewColor(values.Color{B: 0.02})
	t.rate = values.NewRange(0.2, 0, 100)
	t.duration = values.NewRange(0.8, 0.01, 60)
	t.ramp = values.NewEnum(values.Enum(easing.InOutQuad.String()), ramps)

	group := layer.Properties()
	for _, err := range []error{
		profile.Add(group, "colour", t.colour, property.Description{Name: "Sparkle colour"}),
		profile.Add(group, "background", t.background, property.Description{Name: "Background colour"}),
		profile.Add(group, "rate", t.rate, property.Description{Name: "Rate", Description: "Scintillations per pixel per second", InputAffix: "/s"}),
		profile.Add(group, "duration", t.duration, property.Description{Name: "Duration", InputAffix: "s"}),
		profile.Add(group, "ramp", t.ramp, property.Description{Name: "Ramp", DisableKeyframes: true}),
	} {
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Render implements Brush. Particles advance by the distance the layer
// timeline moved since the previous frame.
func (t *Twinkle) Render(f *Frame) {
	if len(t.particles) != f.Len() {
		t.particles = make([]particle, f.Len())
	}

	delta := t.layer.Clock().Delta()
	if delta < 0 {
		delta = 0
	}
	chance := float64(t.rate.CurrentValue()) * delta.Seconds()
	duration := time.Duration(float64(t.duration.CurrentValue()) * float64(time.Second))
	fn, err := easing.Parse(string(t.ramp.CurrentValue()))
	if err != nil {
		fn = easing.InOutQuad
	}
	lut := util.GenerateLutMemoized(lutSamples, fn, &t.memoizer)

	back := t.background.CurrentValue().Colorful()
	fore := t.colour.CurrentValue().Colorful()
	for i := range t.particles {
		p := &t.particles[i]
		if p.running {
			p.elapsed += delta
			if p.elapsed >= p.duration {
				*p = particle{}
			}
		} else if chance > 0 && t.rand.Float64() < chance {
			// Vary the speed so neighbouring sparkles fall out of step
			p.duration = time.Duration(float64(duration) * util.RandomBetween(t.rand, 0.75, 1.5))
			p.running = true
		}

		f.SetPixel(i, t.pixelColour(p, lut, back, fore))
	}
}

func (t *Twinkle) pixelColour(p *particle, lut []float64, back, fore colorful.Color) colorful.Color {
	if !p.running {
		return back
	}
	gain := lut[int(p.progress()*float64(len(lut)-1))]
	return back.BlendHcl(fore, gain).Clamped()
}
