package kli

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 8-bit RGBA value.
type Color uint32

// RGBA returns a color from channel values, each clamped to [0,255].
func RGBA(r, g, b, a int) Color {
	return Color(uint32(clampByte(r))<<24 | uint32(clampByte(g))<<16 | uint32(clampByte(b))<<8 | uint32(clampByte(a)))
}

// RGB returns an opaque color.
func RGB(r, g, b int) Color {
	return RGBA(r, g, b, 255)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 24) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 16) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c >> 8) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c) }

// WithR returns c with the red channel replaced, clamped to [0,255].
func (c Color) WithR(v int) Color { return RGBA(v, int(c.G()), int(c.B()), int(c.A())) }

// WithG returns c with the green channel replaced, clamped to [0,255].
func (c Color) WithG(v int) Color { return RGBA(int(c.R()), v, int(c.B()), int(c.A())) }

// WithB returns c with the blue channel replaced, clamped to [0,255].
func (c Color) WithB(v int) Color { return RGBA(int(c.R()), int(c.G()), v, int(c.A())) }

// WithA returns c with the alpha channel replaced, clamped to [0,255].
func (c Color) WithA(v int) Color { return RGBA(int(c.R()), int(c.G()), int(c.B()), v) }

// Hex returns the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R()) / 255, G: float64(c.G()) / 255, B: float64(c.B()) / 255}
}

func fromColorful(cc colorful.Color, alpha uint8) Color {
	r, g, b := cc.Clamped().RGB255()
	return RGBA(int(r), int(g), int(b), int(alpha))
}

// Blend mixes c towards o by t in [0,1]. Alpha is interpolated linearly.
func (c Color) Blend(o Color, t float64) Color {
	a := float64(c.A()) + (float64(o.A())-float64(c.A()))*t
	return fromColorful(c.colorful().BlendRgb(o.colorful(), t), clampByte(int(a+0.5)))
}

// HSV returns an opaque color from hue in degrees and saturation/value in [0,1].
func HSV(h, s, v float64) Color {
	return fromColorful(colorful.Hsv(h, s, v), 255)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	alpha := uint8(255)
	rgb := s
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(strings.ToLower(s[7:]), "%02x", &a); err != nil {
			return 0, fmt.Errorf("kli: parse color %q: %w", s, err)
		}
		alpha, rgb = a, s[:7]
	}
	cc, err := colorful.Hex(rgb)
	if err != nil {
		return 0, fmt.Errorf("kli: parse color %q: %w", s, err)
	}
	return fromColorful(cc, alpha), nil
}

// Named colors used as defaults by the renderer.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)
