package values

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledtx/property"
	"github.com/matt-g-everett/ledtx/storage"
	"github.com/matt-g-everett/ledtx/timeline"
)

func TestInterpolate(t *testing.T) {
	assert.Equal(t, Float(2.5), Float(0).Interpolate(10, 0.5, 0.25))
	assert.Equal(t, Int(3), Int(0).Interpolate(10, 0.5, 0.26))
	assert.Equal(t, Int(7), Int(10).Interpolate(0, 0.5, 0.26))
	assert.Equal(t, Point{X: 1, Y: 2}, Point{}.Interpolate(Point{X: 2, Y: 4}, 0.5, 0.5))
	assert.Equal(t, Size{Width: 3, Height: 6}, Size{Width: 2, Height: 4}.Interpolate(Size{Width: 4, Height: 8}, 0.5, 0.5))
}

func TestColor_Interpolate(t *testing.T) {
	red := Color{R: 1}
	blue := Color{B: 1}

	assert.Equal(t, red.Hex(), red.Interpolate(blue, 0, 0).Hex())
	assert.Equal(t, blue.Hex(), red.Interpolate(blue, 1, 1).Hex())

	mid := red.Interpolate(blue, 0.5, 0.5)
	want := colorful.Color{R: 1}.BlendHcl(colorful.Color{B: 1}, 0.5).Clamped()
	assert.Equal(t, want.Hex(), mid.Hex())
}

func TestColor_Storage(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)

	payload, err := storage.Encode(c)
	require.NoError(t, err)
	assert.Contains(t, payload, "#ff8000")

	var decoded Color
	require.NoError(t, storage.Decode(payload, &decoded))
	assert.Equal(t, "#ff8000", decoded.Hex())

	assert.Error(t, storage.Decode("not-a-colour", &decoded))
	_, err = ParseColor("red")
	assert.Error(t, err)
}

func TestPoint_Storage(t *testing.T) {
	payload, err := storage.Encode(Point{X: 0.25, Y: 1})
	require.NoError(t, err)

	var decoded Point
	require.NoError(t, storage.Decode(payload, &decoded))
	assert.Equal(t, Point{X: 0.25, Y: 1}, decoded)
}

func registered(p interface {
	Registrations() []property.DataBindingRegistration
}) []string {
	var out []string
	for _, r := range p.Registrations() {
		out = append(out, r.Member())
	}
	return out
}

func TestConstructors_RegisterMembers(t *testing.T) {
	assert.Equal(t, []string{""}, registered(NewFloat(1)))
	assert.Equal(t, []string{""}, registered(NewRange(1, 0, 2)))
	assert.Equal(t, []string{""}, registered(NewInt(1)))
	assert.Equal(t, []string{""}, registered(NewBool(true)))
	assert.Equal(t, []string{""}, registered(NewEnum("a", []Enum{"a", "b"})))
	assert.Equal(t, []string{"X", "Y"}, registered(NewPoint(Point{})))
	assert.Equal(t, []string{"Width", "Height"}, registered(NewSize(Size{})))
	assert.Equal(t, []string{"R", "G", "B"}, registered(NewColor(Color{})))

	assert.Empty(t, registered(NewFloat(1, property.WithoutDataBindings[Float]())))
}

type element struct {
	timeline *timeline.Timeline
}

func (e element) Timeline() property.Timeline   { return e.timeline }
func (e element) DataModel() property.DataModel { return nil }

type group struct{}

func (group) OnCurrentValueSet(string) {}

func initialize[T comparable](t *testing.T, p *property.Property[T]) *timeline.Timeline {
	t.Helper()
	tl := timeline.New(10*time.Second, false)
	require.NoError(t, p.Initialize(element{timeline: tl}, group{}, &storage.PropertyEntity{}, false, property.Description{}, "value"))
	require.NoError(t, p.ApplyDefaultValue())
	return tl
}

func TestNewColor_ClampsChannels(t *testing.T) {
	p := NewColor(Color{R: 0.5, G: 0.5})
	tl := initialize(t, p)

	r, ok := property.LookupRegistration[Color, float64](p, "R")
	require.True(t, ok)
	b, err := property.EnableDataBinding(p, r)
	require.NoError(t, err)
	require.NoError(t, b.SetSource(property.SourceFunc[float64](func(property.Timeline) (float64, error) { return 3, nil })))

	require.NoError(t, p.Update(tl))
	assert.Equal(t, Color{R: 1, G: 0.5}, p.CurrentValue())
}

func TestNewEnum_IgnoresUnknownOptions(t *testing.T) {
	p := NewEnum("solid", []Enum{"solid", "pulse"})
	tl := initialize(t, p)

	r, ok := property.LookupRegistration[Enum, Enum](p, "")
	require.True(t, ok)
	b, err := property.EnableDataBinding(p, r)
	require.NoError(t, err)

	next := Enum("strobe")
	require.NoError(t, b.SetSource(property.SourceFunc[Enum](func(property.Timeline) (Enum, error) { return next, nil })))
	require.NoError(t, p.Update(tl))
	assert.Equal(t, Enum("solid"), p.CurrentValue())

	next = "pulse"
	require.NoError(t, p.Update(tl))
	assert.Equal(t, Enum("pulse"), p.CurrentValue())
}

func TestBool_Snaps(t *testing.T) {
	p := NewBool(false)
	tl := initialize(t, p)
	require.NoError(t, p.SetKeyframesEnabled(true))
	require.NoError(t, p.AddKeyframe(property.NewKeyframe(Bool(false), 0, 0)))
	require.NoError(t, p.AddKeyframe(property.NewKeyframe(Bool(true), 10*time.Second, 0)))

	tl.JumpTo(9 * time.Second)
	require.NoError(t, p.Update(tl))
	assert.Equal(t, Bool(false), p.CurrentValue())
}
