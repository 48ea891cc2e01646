package stream

import (
	"encoding/binary"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPixels is the length of the strip when none is configured.
const DefaultPixels = 500

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of n pixels.
func NewFrame(n int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// Pixel returns the colour of pixel i.
func (f *Frame) Pixel(i int) colorful.Color {
	return f.pixels[i]
}

// SetPixel changes the colour of pixel i.
func (f *Frame) SetPixel(i int, c colorful.Color) {
	f.pixels[i] = c
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c colorful.Color) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// InterpolateFrame merges two frames of the same length.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	for i := range f.pixels {
		out.pixels[i] = f.pixels[i].BlendHcl(f2.pixels[i], transitionPoint).Clamped()
	}

	return out
}

// MarshalBinary converts a Frame into binary data: a little endian pixel
// count followed by one RGB triplet per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	n := min(len(f.pixels), math.MaxUint16)
	data = make([]byte, 2, (n*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(n))
	for _, p := range f.pixels[:n] {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
