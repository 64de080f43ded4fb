package viz

import (
	"math"
	"strings"
)

// Braille patterns pack 2x4 dots per terminal cell, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface. Sub-pixel resolution is
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// FillCircle lights a disc of sub-pixels, used for body markers.
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// StrokeEllipse samples an axis-aligned-then-rotated ellipse centered at
// (cx, cy) in sub-pixels with semi-axes a, b and rotation theta.
func (c *Canvas) StrokeEllipse(cx, cy float64, a, b, theta float64) {
	if a <= 0 || b <= 0 || math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return
	}
	steps := 180
	sin, cos := math.Sin(theta), math.Cos(theta)
	for i := 0; i < steps; i++ {
		t := 2 * math.Pi * float64(i) / float64(steps)
		px := a * math.Cos(t)
		py := b * math.Sin(t)
		x := cx + px*cos - py*sin
		y := cy + px*sin + py*cos
		c.Set(int(math.Round(x)), int(math.Round(y)))
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.Grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
