// Package draw renders scenes to a terminal using half-block characters.
package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomz197/rigid2d/internal/color"
	"github.com/tomz197/rigid2d/internal/polygon"
	"github.com/tomz197/rigid2d/internal/vector"
)

// Half-block characters. A terminal cell holds two vertically stacked pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a pixel buffer with 2x vertical resolution. Drawing happens in
// logical world coordinates with y pointing up; the canvas scales them to
// the attached terminal.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []color.RGB // [y * termWidth + x]
	set            []bool

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// reused between frames
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []vector.Vector
	intersectionBuf []float64
}

// NewCanvas creates a canvas that maps a logicalWidth x logicalHeight world
// onto termWidth x termHeight terminal cells.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions, keeping the logical
// size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]color.RGB, c.subPixelHeight*termWidth)
		c.set = make([]bool, c.subPixelHeight*termWidth)
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.set)
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// toPixel maps a world point to sub-pixel space. World y grows upwards,
// terminal rows grow downwards.
func (c *Canvas) toPixel(p vector.Vector) vector.Vector {
	return vector.New(p.X*c.scaleX, (c.logicalHeight-p.Y)*c.scaleY)
}

func (c *Canvas) setPixel(x, y int, col color.RGB) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	i := y*c.termWidth + x
	c.pixels[i] = col
	c.set[i] = true
}

// Pixel reports the color of the sub-pixel at (x, y) and whether it is set.
func (c *Canvas) Pixel(x, y int) (color.RGB, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGB{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.set[i]
}

// Set colors the pixel containing world point p.
func (c *Canvas) Set(p vector.Vector, col color.RGB) {
	px := c.toPixel(p)
	c.setPixel(int(math.Floor(px.X)), int(math.Floor(px.Y)), col)
}

// DrawLine draws a line between two world points using Bresenham's
// algorithm.
func (c *Canvas) DrawLine(p1, p2 vector.Vector, col color.RGB) {
	a, b := c.toPixel(p1), c.toPixel(p2)
	x1, y1 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x2, y2 := int(math.Floor(b.X)), int(math.Floor(b.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws shape in col. A filled polygon is scan-converted, and its
// outline is always drawn so that thin shapes stay visible.
func (c *Canvas) DrawPolygon(shape polygon.Polygon, col color.RGB, filled bool) {
	n := len(shape)
	if n < 2 {
		if n == 1 {
			c.Set(shape[0], col)
		}
		return
	}
	if filled && n >= 3 {
		c.fillPolygon(shape, col)
	}
	for i := range n {
		c.DrawLine(shape[i], shape[(i+1)%n], col)
	}
}

// fillPolygon fills shape using an even-odd scanline pass in pixel space.
func (c *Canvas) fillPolygon(shape polygon.Polygon, col color.RGB) {
	if cap(c.scaledBuf) < len(shape) {
		c.scaledBuf = make([]vector.Vector, len(shape))
	}
	scaled := c.scaledBuf[:len(shape)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range shape {
		scaled[i] = c.toPixel(p)
		minY = min(minY, scaled[i].Y)
		maxY = max(maxY, scaled[i].Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)
	n := len(scaled)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range n {
			p1, p2 := scaled[i], scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			xStart := max(int(math.Ceil(xs[i]-0.5)), 0)
			xEnd := min(int(math.Floor(xs[i+1]-0.5)), c.termWidth-1)
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// Render writes the canvas to w as truecolor half-block cells. Empty cells
// are skipped, so the screen should be cleared beforehand.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 24)

	for row := range c.termHeight {
		top := row * 2 * c.termWidth
		bottom := top + c.termWidth
		for col := range c.termWidth {
			topSet, bottomSet := c.set[top+col], c.set[bottom+col]
			if !topSet && !bottomSet {
				continue
			}
			c.moveCursor(col+1, row+1)
			switch {
			case topSet && bottomSet:
				c.writeColor(38, c.pixels[top+col])
				c.writeColor(48, c.pixels[bottom+col])
				c.renderBuf.WriteRune(BlockUpperHalf)
			case topSet:
				c.writeColor(38, c.pixels[top+col])
				c.renderBuf.WriteString("\033[49m")
				c.renderBuf.WriteRune(BlockUpperHalf)
			default:
				c.writeColor(38, c.pixels[bottom+col])
				c.renderBuf.WriteString("\033[49m")
				c.renderBuf.WriteRune(BlockLowerHalf)
			}
		}
	}
	c.renderBuf.WriteString("\033[0m")

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor emits an SGR truecolor sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, col color.RGB) {
	r, g, b := col.RGB255()
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(b), 10))
	c.renderBuf.WriteByte('m')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
