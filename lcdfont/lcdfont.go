// Package lcdfont decodes bitmap fonts laid out for page-addressed LCD
// controllers and builds them from golang.org/x/image/font faces.
//
// A font descriptor is a byte slice with a 4 byte header followed by one
// glyph record per character code from 32 to 127:
//
//	[0] bytes per glyph record
//	[1] cell width in pixels
//	[2] cell height in pixels
//	[3] bytes per vertical strip
//
// Each glyph record starts with the glyph advance width, followed by one
// vertical strip per column. Bit r%8 of strip byte r/8 is row r, top row
// first. This is the layout produced by the GLCD Font Creator tool once the
// header has been prepended.
package lcdfont

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Range of character codes covered by a font.
const (
	First = 32
	Last  = 127
)

const headerSize = 4

// Font is a validated font descriptor.
type Font struct {
	GlyphSize int // Bytes per glyph record, advance byte included
	Width     int // Cell width in pixels
	Height    int // Cell height in pixels
	StripSize int // Bytes per vertical strip

	data []byte
}

// Parse validates a raw font descriptor. The returned Font references data
// without copying it.
func Parse(data []byte) (*Font, error) {
	if len(data) < headerSize {
		return nil, errors.New("lcdfont: descriptor shorter than header")
	}
	f := &Font{
		GlyphSize: int(data[0]),
		Width:     int(data[1]),
		Height:    int(data[2]),
		StripSize: int(data[3]),
		data:      data,
	}
	if f.Width == 0 || f.Height == 0 {
		return nil, fmt.Errorf("lcdfont: invalid cell size %dx%d", f.Width, f.Height)
	}
	if f.StripSize*8 < f.Height {
		return nil, fmt.Errorf("lcdfont: %d bytes per strip cannot hold %d rows", f.StripSize, f.Height)
	}
	if f.GlyphSize < 1+f.Width*f.StripSize {
		return nil, fmt.Errorf("lcdfont: glyph record of %d bytes cannot hold %d strips of %d bytes", f.GlyphSize, f.Width, f.StripSize)
	}
	if want := headerSize + (Last-First+1)*f.GlyphSize; len(data) < want {
		return nil, fmt.Errorf("lcdfont: descriptor truncated; expected %d bytes, got %d bytes", want, len(data))
	}
	return f, nil
}

// Bytes returns the raw descriptor.
func (f *Font) Bytes() []byte {
	return f.data
}

// Glyph returns the glyph for character code c. ok is false when c is
// outside [First, Last].
func (f *Font) Glyph(c byte) (g Glyph, ok bool) {
	if c < First || c > Last {
		return Glyph{}, false
	}
	offset := int(c-First)*f.GlyphSize + headerSize
	rec := f.data[offset : offset+f.GlyphSize]
	return Glyph{
		Width:     int(rec[0]),
		stripSize: f.StripSize,
		strips:    rec[1:],
	}, true
}

// TextWidth returns the sum of the advance widths of the characters of s
// that the font can render.
func (f *Font) TextWidth(s string) int {
	w := 0
	for i := 0; i < len(s); i++ {
		if g, ok := f.Glyph(s[i]); ok {
			w += g.Width
		}
	}
	return w
}

// Glyph is a single character bitmap.
type Glyph struct {
	Width int // Advance width in pixels

	stripSize int
	strips    []byte
}

// Bit reports whether the pixel at column col, row row of the glyph cell is
// lit. col and row must lie within the font cell.
func (g Glyph) Bit(col, row int) bool {
	z := g.strips[col*g.stripSize+row>>3]
	return z&(1<<uint(row&7)) != 0
}

// FromFace rasterizes the characters First to Last of face into a font
// descriptor. The cell is as wide as the widest advance and as high as the
// face line height. Characters missing from the face get a zero advance.
func FromFace(face font.Face) (*Font, error) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := m.Height.Ceil()
	if h := ascent + m.Descent.Ceil(); h > height {
		height = h
	}
	width := 0
	for c := First; c <= Last; c++ {
		if adv, ok := face.GlyphAdvance(rune(c)); ok && adv.Ceil() > width {
			width = adv.Ceil()
		}
	}
	stripSize := (height + 7) / 8
	glyphSize := 1 + width*stripSize
	if width == 0 || height == 0 || width > 255 || height > 255 || glyphSize > 255 {
		return nil, fmt.Errorf("lcdfont: face cell %dx%d does not fit a descriptor", width, height)
	}

	data := make([]byte, headerSize+(Last-First+1)*glyphSize)
	data[0] = byte(glyphSize)
	data[1] = byte(width)
	data[2] = byte(height)
	data[3] = byte(stripSize)

	cell := image.NewAlpha(image.Rect(0, 0, width, height))
	for c := First; c <= Last; c++ {
		rec := data[headerSize+(c-First)*glyphSize:][:glyphSize]
		adv, ok := face.GlyphAdvance(rune(c))
		if !ok {
			continue
		}
		rec[0] = byte(min(adv.Ceil(), width))

		clear(cell.Pix)
		d := font.Drawer{
			Dst:  cell,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.P(0, ascent),
		}
		d.DrawString(string(rune(c)))

		for col := 0; col < width; col++ {
			for row := 0; row < height; row++ {
				if cell.AlphaAt(col, row).A >= 0x80 {
					rec[1+col*stripSize+row>>3] |= 1 << uint(row&7)
				}
			}
		}
	}
	return Parse(data)
}

// Default returns the built-in 7x13 font, rasterized once from
// basicfont.Face7x13.
var Default = sync.OnceValue(func() *Font {
	f, err := FromFace(basicfont.Face7x13)
	if err != nil {
		panic(err)
	}
	return f
})
