package project

import "image/color"

// Color is a 15-bit RGB555 value laid out as 0rrrrrgggggbbbbb.
type Color uint16

// RGB builds a Color from 5-bit components. Components above 31 are clamped.
func RGB(r, g, b uint8) Color {
	return Color(uint16(clamp5(r))<<10 | uint16(clamp5(g))<<5 | uint16(clamp5(b)))
}

// RGB8 builds a Color from 8-bit components, dropping the low three bits.
func RGB8(r, g, b uint8) Color {
	return RGB(r>>3, g>>3, b>>3)
}

// Components returns the 5-bit red, green and blue components.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c>>10) & 0x1f, uint8(c>>5) & 0x1f, uint8(c) & 0x1f
}

// RGBA implements color.Color. The colour is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5, g5, b5 := c.Components()
	return expand5(r5), expand5(g5), expand5(b5), 0xffff
}

// NRGBA returns the 8-bit form of c.
func (c Color) NRGBA() color.NRGBA {
	r5, g5, b5 := c.Components()
	return color.NRGBA{R: r5<<3 | r5>>2, G: g5<<3 | g5>>2, B: b5<<3 | b5>>2, A: 0xff}
}

func clamp5(v uint8) uint8 {
	if v > 0x1f {
		return 0x1f
	}
	return v
}

func expand5(v uint8) uint32 {
	c := uint32(v)
	return c<<11 | c<<6 | c<<1 | c>>4
}

// ColorModel converts arbitrary colours to Color.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>11), uint8(g>>11), uint8(b>>11))
})

func greyRamp(n int) []Color {
	out := make([]Color, n)
	for i := range out {
		level := uint8(0)
		if n > 1 {
			level = uint8(i * 31 / (n - 1))
		}
		out[i] = RGB(level, level, level)
	}
	return out
}
