package core

import (
	"fmt"
	"image/color"
)

// Colour is a linear RGB triple. Channels are unbounded during shading and
// only clamped when converted to 8-bit output.
type Colour struct {
	R, G, B float64
}

// Black is the zero colour
var Black = Colour{}

// White is full intensity on every channel
var White = Colour{1, 1, 1}

// NewColour creates a new Colour
func NewColour(r, g, b float64) Colour {
	return Colour{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colours
func (c Colour) Add(other Colour) Colour {
	return Colour{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply tints the colour by another colour, channel by channel
func (c Colour) Multiply(other Colour) Colour {
	return Colour{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns the colour scaled by a scalar
func (c Colour) Scale(scalar float64) Colour {
	return Colour{c.R * scalar, c.G * scalar, c.B * scalar}
}

// IsBlack reports whether every channel is exactly zero
func (c Colour) IsBlack() bool {
	return c == Black
}

// ToRGB packs the colour as 0xRRGGBB. Each channel is clamped to [0,1],
// scaled by 255 and truncated.
func (c Colour) ToRGB() uint32 {
	r, g, b := channelByte(c.R), channelByte(c.G), channelByte(c.B)
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ToRGBA converts the colour to an opaque color.RGBA using the same
// clamping and truncation as ToRGB
func (c Colour) ToRGBA() color.RGBA {
	return color.RGBA{
		R: channelByte(c.R),
		G: channelByte(c.G),
		B: channelByte(c.B),
		A: 255,
	}
}

func (c Colour) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

func channelByte(x float64) uint8 {
	return uint8(max(0.0, min(1.0, x)) * 255)
}
