package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// canvas is a grid of runes the diagram is drawn onto.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", w))
	}
	return c
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// text writes s from (x, y), clipped to maxW cells and the canvas.
func (c *canvas) text(x, y int, s string, maxW int) {
	s = runewidth.Truncate(s, maxW, "…")
	for _, r := range s {
		if runewidth.RuneWidth(r) != 1 {
			r = '?'
		}
		c.set(x, y, r)
		x++
	}
}

func (c *canvas) fill(x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.set(x, y, ' ')
		}
	}
}

func (c *canvas) box(x1, y1, x2, y2 int, double bool) {
	h, v, tl, tr, bl, br := '─', '│', '┌', '┐', '└', '┘'
	if double {
		h, v, tl, tr, bl, br = '═', '║', '╔', '╗', '╚', '╝'
	}
	for x := x1 + 1; x < x2; x++ {
		c.set(x, y1, h)
		c.set(x, y2, h)
	}
	for y := y1 + 1; y < y2; y++ {
		c.set(x1, y, v)
		c.set(x2, y, v)
	}
	c.set(x1, y1, tl)
	c.set(x2, y1, tr)
	c.set(x1, y2, bl)
	c.set(x2, y2, br)
}

// line plots a segment with Bresenham's algorithm. Segments entirely on one
// side outside the canvas are skipped.
func (c *canvas) line(x1, y1, x2, y2 int, r rune) {
	if (x1 < 0 && x2 < 0) || (y1 < 0 && y2 < 0) || (x1 >= c.w && x2 >= c.w) || (y1 >= c.h && y2 >= c.h) {
		return
	}
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// overlay copies a multi-line block onto the canvas at (x, y).
func (c *canvas) overlay(x, y int, block string) {
	for i, ln := range strings.Split(block, "\n") {
		c.text(x, y+i, ln, c.w-x)
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
