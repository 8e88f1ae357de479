package st7565

import (
	"errors"
	"fmt"
	"image"

	"github.com/flavioheleno/st7565/lcdfont"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// SetFont selects the font used by WriteChar and Print. The cursor and the
// framebuffer are left untouched.
func (d *Dev) SetFont(f *lcdfont.Font) error {
	if f == nil {
		return errors.New("st7565: nil font")
	}
	pf, err := lcdfont.Parse(f.Bytes())
	if err != nil {
		return fmt.Errorf("st7565: %w", err)
	}
	if pf.Width > d.rect.Dx() || pf.Height > d.rect.Dy() {
		return fmt.Errorf("st7565: font cell %dx%d larger than display", pf.Width, pf.Height)
	}
	d.font = pf
	return nil
}

// Font returns a copy of the active font. Changing it does not affect the
// display; pass it to SetFont to apply changes.
func (d *Dev) Font() *lcdfont.Font {
	f := *d.font
	return &f
}

// Locate moves the text cursor to (x, y), the top left corner of the next
// character.
func (d *Dev) Locate(x, y int) error {
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		d.log.Debug("st7565: cursor out of bounds", "x", x, "y", y)
		return fmt.Errorf("st7565: cursor (%d, %d) outside %v", x, y, d.rect)
	}
	d.cursor = image.Point{X: x, Y: y}
	return nil
}

// Cursor returns the text cursor position.
func (d *Dev) Cursor() image.Point {
	return d.cursor
}

// TextWidth returns the width in pixels of s in the active font.
func (d *Dev) TextWidth(s string) int {
	return d.font.TextWidth(s)
}

// WriteChar draws character c at the cursor and advances the cursor by the
// glyph width, wrapping to the next line when the character cell does not
// fit. '\n' moves to the start of the next line. Characters the font does not
// cover are ignored.
func (d *Dev) WriteChar(c byte) error {
	if c == '\n' {
		d.newline()
		return nil
	}
	return d.batch(func() error {
		d.writeChar(c)
		return nil
	})
}

// Print writes s with WriteChar, updating the display once.
func (d *Dev) Print(s string) error {
	return d.batch(func() error {
		for i := 0; i < len(s); i++ {
			d.writeChar(s[i])
		}
		return nil
	})
}

// Printf formats according to a format specifier and prints the result.
func (d *Dev) Printf(format string, a ...any) error {
	return d.Print(fmt.Sprintf(format, a...))
}

// newline moves the cursor to the start of the next text line, back to the
// top when there is no room left for a full line.
func (d *Dev) newline() {
	h := d.font.Height
	d.cursor.X = 0
	d.cursor.Y += h
	if d.cursor.Y >= d.rect.Dy()-h {
		d.cursor.Y = 0
	}
}

func (d *Dev) writeChar(c byte) {
	if c == '\n' {
		d.newline()
		return
	}
	g, ok := d.font.Glyph(c)
	if !ok {
		d.log.Debug("st7565: character ignored", "char", c)
		return
	}
	if d.cursor.X+d.font.Width > d.rect.Dx() {
		d.newline()
	}
	x, y := d.cursor.X, d.cursor.Y
	for row := 0; row < d.font.Height; row++ {
		for col := 0; col < d.font.Width; col++ {
			d.buffer.SetBit(x+col, y+row, image1bit.Bit(g.Bit(col, row)))
		}
	}
	d.cursor.X += g.Width
}
