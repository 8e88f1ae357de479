package framebuffer

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Buffer is a 1-bit image where pixels are packed in vertical bytes grouped
// in pages of 8 rows.
type Buffer struct {
	Pix    []byte          // Pixel data, page-major
	Stride int             // Bytes per page (the image width)
	Rect   image.Rectangle // Image bounds
}

// NewBuffer creates a new Buffer with the specified bounds.
// The height must be a multiple of 8 (a whole number of pages).
func NewBuffer(r image.Rectangle) *Buffer {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Buffer{Rect: r}
	}
	if h%8 != 0 {
		panic("framebuffer: height must be a multiple of 8")
	}
	return &Buffer{
		Pix:    make([]byte, w*h/8),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (b *Buffer) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds.
func (b *Buffer) Bounds() image.Rectangle {
	return b.Rect
}

// At returns the color of the pixel at (x, y).
func (b *Buffer) At(x, y int) color.Color {
	return b.BitAt(x, y)
}

// BitAt returns the state of the pixel at (x, y). Pixels outside the bounds
// are Off.
func (b *Buffer) BitAt(x, y int) image1bit.Bit {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return image1bit.Off
	}
	offset, mask := b.pixOffset(x, y)
	return image1bit.Bit(b.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (b *Buffer) Set(x, y int, c color.Color) {
	b.SetBit(x, y, image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// SetBit sets the pixel at (x, y). Coordinates outside the bounds are
// ignored.
func (b *Buffer) SetBit(x, y int, c image1bit.Bit) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	offset, mask := b.pixOffset(x, y)
	if c {
		b.Pix[offset] |= mask
	} else {
		b.Pix[offset] &^= mask
	}
}

// Pages returns the number of 8-pixel pages.
func (b *Buffer) Pages() int {
	return b.Rect.Dy() / 8
}

// Page returns the bytes of page i, one per column. The slice aliases Pix.
func (b *Buffer) Page(i int) []byte {
	return b.Pix[i*b.Stride : (i+1)*b.Stride]
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	clear(b.Pix)
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Each byte holds 8 vertically stacked pixels, bit 0 being the topmost.
func (b *Buffer) pixOffset(x, y int) (offset int, mask byte) {
	x -= b.Rect.Min.X
	y -= b.Rect.Min.Y
	offset = x + (y/8)*b.Stride
	mask = 1 << uint(y&7)
	return
}
