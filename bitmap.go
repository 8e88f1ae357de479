package st7565

import (
	"fmt"
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Bitmap is a 1 bit image packed by rows, most significant bit first. Each
// row starts on a byte boundary.
type Bitmap struct {
	W, H   int    // Size in pixels
	Stride int    // Bytes per row
	Data   []byte // Packed rows
}

// BitmapFromImage packs img, converting each pixel with image1bit.BitModel.
func BitmapFromImage(img image.Image) Bitmap {
	r := img.Bounds()
	bm := Bitmap{W: r.Dx(), H: r.Dy(), Stride: (r.Dx() + 7) / 8}
	bm.Data = make([]byte, bm.Stride*bm.H)
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			if image1bit.BitModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(image1bit.Bit) {
				bm.Data[y*bm.Stride+x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	return bm
}

func (bm Bitmap) validate() error {
	if bm.W < 0 || bm.H < 0 {
		return fmt.Errorf("st7565: invalid bitmap size %dx%d", bm.W, bm.H)
	}
	if bm.Stride*8 < bm.W {
		return fmt.Errorf("st7565: bitmap stride of %d bytes cannot hold %d pixels", bm.Stride, bm.W)
	}
	if len(bm.Data) < bm.Stride*bm.H {
		return fmt.Errorf("st7565: bitmap data truncated; expected %d bytes, got %d bytes", bm.Stride*bm.H, len(bm.Data))
	}
	return nil
}

// DrawBitmap copies bm to the framebuffer with its top left corner at (x, y).
// Pixels past the right or bottom edge are clipped.
func (d *Dev) DrawBitmap(bm Bitmap, x, y int) error {
	if err := bm.validate(); err != nil {
		return err
	}
	return d.batch(func() error {
		for v := 0; v < bm.H && y+v < d.rect.Dy(); v++ {
			row := bm.Data[v*bm.Stride : (v+1)*bm.Stride]
			for h := 0; h < bm.W && x+h < d.rect.Dx(); h++ {
				on := row[h>>3]&(0x80>>uint(h&7)) != 0
				d.buffer.SetBit(x+h, y+v, image1bit.Bit(on))
			}
		}
		return nil
	})
}
