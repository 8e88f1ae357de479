package st7565

import (
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// SetPixel sets a pixel in the framebuffer without updating the display.
// Coordinates outside the display are ignored.
func (d *Dev) SetPixel(x, y int, c image1bit.Bit) {
	if x < 0 || y < 0 || x >= d.rect.Dx() || y >= d.rect.Dy() {
		d.log.Debug("st7565: pixel out of bounds", "x", x, "y", y)
		return
	}
	d.buffer.SetBit(x, y, c)
}

// Point draws a single pixel.
func (d *Dev) Point(x, y int, c image1bit.Bit) error {
	return d.batch(func() error {
		d.SetPixel(x, y, c)
		return nil
	})
}

// Line draws a 1 pixel line from (x0, y0) to (x1, y1), both ends included.
func (d *Dev) Line(x0, y0, x1, y1 int, c image1bit.Bit) error {
	return d.batch(func() error {
		d.line(x0, y0, x1, y1, c)
		return nil
	})
}

// Rectangle draws the outline of the rectangle with corners (x0, y0) and
// (x1, y1).
func (d *Dev) Rectangle(x0, y0, x1, y1 int, c image1bit.Bit) error {
	return d.batch(func() error {
		d.line(x0, y0, x1, y0, c)
		d.line(x0, y1, x1, y1, c)
		d.line(x0, y0, x0, y1, c)
		d.line(x1, y0, x1, y1, c)
		return nil
	})
}

// FillRect draws a filled rectangle with corners (x0, y0) and (x1, y1).
func (d *Dev) FillRect(x0, y0, x1, y1 int, c image1bit.Bit) error {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)
	return d.batch(func() error {
		d.fill(x0, y0, x1, y1, c)
		return nil
	})
}

// RoundRect draws the outline of a rectangle whose corners are rounded with
// radius r.
func (d *Dev) RoundRect(x0, y0, x1, y1, r int, c image1bit.Bit) error {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)
	return d.batch(func() error {
		d.line(x0+r, y0, x1-r, y0, c)
		d.line(x0+r, y1, x1-r, y1, c)
		d.line(x0, y0+r, x0, y1-r, c)
		d.line(x1, y0+r, x1, y1-r, c)
		arc(r, func(x, y int) {
			d.buffer.SetBit(x1-r+y, y0+r+x, c) // top right
			d.buffer.SetBit(x1-r-x, y1-r+y, c) // bottom right
			d.buffer.SetBit(x0+r-y, y1-r-x, c) // bottom left
			d.buffer.SetBit(x0+r+x, y0+r-y, c) // top left
		})
		return nil
	})
}

// FillRoundRect draws a filled rectangle whose corners are rounded with
// radius r.
//
// The rounded caps are filled with one horizontal line per arc step, the
// same way FillCircle works.
func (d *Dev) FillRoundRect(x0, y0, x1, y1, r int, c image1bit.Bit) error {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)
	return d.batch(func() error {
		d.fill(x0, y0+r, x1, y1-r, c)
		arc(r, func(x, y int) {
			d.line(x0+r-y, y0+r+x, x1-r+y, y0+r+x, c)
			d.line(x0+r+x, y1-r+y, x1-r-x, y1-r+y, c)
		})
		return nil
	})
}

// Circle draws a circle centered on (x0, y0) with radius r.
//
// Each arc step plots 4 points rotated by 90°; large circles may show small
// gaps.
func (d *Dev) Circle(x0, y0, r int, c image1bit.Bit) error {
	return d.batch(func() error {
		arc(r, func(x, y int) {
			d.buffer.SetBit(x0+y, y0+x, c)
			d.buffer.SetBit(x0-x, y0+y, c)
			d.buffer.SetBit(x0-y, y0-x, c)
			d.buffer.SetBit(x0+x, y0-y, c)
		})
		return nil
	})
}

// FillCircle draws a filled disk centered on (x0, y0) with radius r.
//
// Each arc step draws two horizontal lines, which can miss isolated pixels
// near the edge.
func (d *Dev) FillCircle(x0, y0, r int, c image1bit.Bit) error {
	return d.batch(func() error {
		arc(r, func(x, y int) {
			d.line(x0-y, y0+x, x0+y, y0+x, c)
			d.line(x0+x, y0+y, x0-x, y0+y, c)
		})
		return nil
	})
}

// line plots a line with Bresenham's algorithm. On a tie (2*err equal to dy
// or dx) the coordinate is not stepped, so the pixels depend on the drawing
// direction.
func (d *Dev) line(x0, y0, x1, y1 int, c image1bit.Bit) {
	dx, sx := abs(x1-x0), -1
	if x0 < x1 {
		sx = 1
	}
	dy, sy := -abs(y1-y0), -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		d.buffer.SetBit(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > dy {
			err += dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// fill sets every pixel of the inclusive rectangle. x0 <= x1 and y0 <= y1.
func (d *Dev) fill(x0, y0, x1, y1 int, c image1bit.Bit) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			d.buffer.SetBit(x, y, c)
		}
	}
}

// arc traces a quarter circle of radius r with the midpoint algorithm. plot
// receives offsets with x going from -r up to 0 and y from 0 up to r.
func arc(r int, plot func(x, y int)) {
	x, y, err := -r, 0, 2-2*r
	for {
		plot(x, y)
		e := err
		if e <= y {
			y++
			err += y*2 + 1
		}
		if e > x || err > y {
			x++
			err += x*2 + 1
		}
		if x >= 0 {
			return
		}
	}
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
