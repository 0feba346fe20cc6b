package viz

import "strings"

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille dot matrix. A canvas of Width x Height cells has
// (2*Width) x (4*Height) addressable dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return 2 * c.Width, 4 * c.Height }

// Set turns on the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Line draws a segment with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// project maps data points onto dot coordinates, scaled to fill the
// canvas with y growing upwards.
func (c *Canvas) project(xs, ys []float64) (px, py []int) {
	n := min(len(xs), len(ys))
	if n == 0 {
		return nil, nil
	}
	xlo, xhi := bounds(xs[:n])
	ylo, yhi := bounds(ys[:n])
	w, h := c.Dots()

	scale := func(v, lo, hi float64, size int) int {
		if hi == lo {
			return size / 2
		}
		return int((v - lo) / (hi - lo) * float64(size-1))
	}

	px, py = make([]int, n), make([]int, n)
	for i := 0; i < n; i++ {
		px[i] = scale(xs[i], xlo, xhi, w)
		py[i] = h - 1 - scale(ys[i], ylo, yhi, h)
	}
	return px, py
}

// Polyline draws the points and joins consecutive ones.
func (c *Canvas) Polyline(xs, ys []float64) {
	px, py := c.project(xs, ys)
	for i := range px {
		if i == 0 {
			c.Set(px[i], py[i])
			continue
		}
		c.Line(px[i-1], py[i-1], px[i], py[i])
	}
}

// Scatter draws the points without joining them.
func (c *Canvas) Scatter(xs, ys []float64) {
	px, py := c.project(xs, ys)
	for i := range px {
		c.Set(px[i], py[i])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// PhasePortrait draws the curve (q(t), p(t)) on a fresh canvas.
func PhasePortrait(q, p []float64, w, h int) string {
	c := NewCanvas(w, h)
	c.Polyline(q, p)
	return c.String()
}

// ScatterPlot draws unconnected points on a fresh canvas, e.g. a Poincaré
// section.
func ScatterPlot(xs, ys []float64, w, h int) string {
	c := NewCanvas(w, h)
	c.Scatter(xs, ys)
	return c.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
