// Package color defines the RGB color tag carried by bodies and HSV helpers.
package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color with components in [0, 1].
type RGB struct {
	R, G, B float32
}

// Named colors.
var (
	Black   = RGB{0, 0, 0}
	White   = RGB{1, 1, 1}
	Red     = RGB{1, 0, 0}
	Yellow  = RGB{1, 1, 0}
	Green   = RGB{0, 0.8, 0}
	Lime    = RGB{0, 1, 0}
	Aqua    = RGB{0, 1, 1}
	Blue    = RGB{0, 0, 1}
	Fuchsia = RGB{1, 0, 1}
	Violet  = RGB{0.5, 0, 0.5}
	Orange  = RGB{1, 0.64, 0}
	Indigo  = RGB{0.294, 0, 0.51}
)

const twoPi = 2 * math.Pi

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func fromColorful(c colorful.Color) RGB {
	return RGB{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

// Add sums the components of c and o, clamping each to 1.
func (c RGB) Add(o RGB) RGB {
	sum := colorful.Color{
		R: float64(c.R + o.R),
		G: float64(c.G + o.G),
		B: float64(c.B + o.B),
	}
	return fromColorful(sum.Clamped())
}

// Subtract subtracts the components of o from c, clamping each to 0.
func (c RGB) Subtract(o RGB) RGB {
	diff := colorful.Color{
		R: float64(c.R - o.R),
		G: float64(c.G - o.G),
		B: float64(c.B - o.B),
	}
	return fromColorful(diff.Clamped())
}

// Hue returns the HSV hue in radians, in [0, 2π). Greys (including black)
// have hue 0.
func (c RGB) Hue() float64 {
	h, _, _ := c.colorful().Hsv()
	rad := h * math.Pi / 180
	if rad >= twoPi {
		rad -= twoPi
	}
	return rad
}

// Sat returns the HSV saturation in [0, 1].
func (c RGB) Sat() float64 {
	_, s, _ := c.colorful().Hsv()
	return s
}

// Val returns the HSV value in [0, 1].
func (c RGB) Val() float64 {
	_, _, v := c.colorful().Hsv()
	return v
}

// FromHSV returns the color with hue h (radians), saturation s and value v.
func FromHSV(h, s, v float64) RGB {
	return fromColorful(colorful.Hsv(wrapAngle(h)*180/math.Pi, s, v))
}

// HueShift returns c with its hue rotated by dh radians, keeping saturation
// and value.
func HueShift(c RGB, dh float64) RGB {
	h, s, v := c.colorful().Hsv()
	return FromHSV(h*math.Pi/180+dh, s, v)
}

// Equal reports whether c and o have identical components.
func (c RGB) Equal(o RGB) bool {
	return c == o
}

// Within reports whether each component of c and o differs by at most eps.
func (c RGB) Within(eps float64, o RGB) bool {
	return math.Abs(float64(c.R-o.R)) <= eps &&
		math.Abs(float64(c.G-o.G)) <= eps &&
		math.Abs(float64(c.B-o.B)) <= eps
}

// RGB255 returns the components scaled to 0..255 for terminal output.
func (c RGB) RGB255() (r, g, b uint8) {
	return c.colorful().Clamped().RGB255()
}

// wrapAngle maps an angle into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
