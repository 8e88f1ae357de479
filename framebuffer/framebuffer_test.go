package framebuffer

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantPanic  bool
		wantStride int
		wantPixLen int
		wantPages  int
	}{
		{"128x64", image.Rect(0, 0, 128, 64), false, 128, 1024, 8},
		{"132x32", image.Rect(0, 0, 132, 32), false, 132, 528, 4},
		{"4x8", image.Rect(0, 0, 4, 8), false, 4, 4, 1},
		{"offset rect", image.Rect(10, 16, 14, 32), false, 4, 8, 2},
		{"height not page aligned panics", image.Rect(0, 0, 8, 12), true, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, want panic = %v", r != nil, tt.wantPanic)
				}
			}()

			b := NewBuffer(tt.rect)
			if tt.wantPanic {
				return
			}
			if b.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", b.Rect, tt.rect)
			}
			if b.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", b.Stride, tt.wantStride)
			}
			if len(b.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(b.Pix), tt.wantPixLen)
			}
			if p := b.Pages(); p != tt.wantPages {
				t.Errorf("Pages() = %d, want %d", p, tt.wantPages)
			}
		})
	}
}

func TestBufferPixOffset(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 8, 16))

	tests := []struct {
		x, y   int
		offset int
		mask   byte
	}{
		{0, 0, 0, 0x01},
		{0, 7, 0, 0x80},
		{3, 2, 3, 0x04},
		{0, 8, 8, 0x01},
		{7, 15, 15, 0x80},
	}

	for _, tt := range tests {
		offset, mask := b.pixOffset(tt.x, tt.y)
		if offset != tt.offset || mask != tt.mask {
			t.Errorf("pixOffset(%d, %d) = (%d, 0x%02X), want (%d, 0x%02X)",
				tt.x, tt.y, offset, mask, tt.offset, tt.mask)
		}
	}
}

func TestBufferSetGetEveryPixel(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 132, 32))

	for y := 0; y < 32; y++ {
		for x := 0; x < 132; x++ {
			b.SetBit(x, y, image1bit.On)
			if !b.BitAt(x, y) {
				t.Fatalf("BitAt(%d, %d) = Off after SetBit(On)", x, y)
			}
			b.SetBit(x, y, image1bit.Off)
			if b.BitAt(x, y) {
				t.Fatalf("BitAt(%d, %d) = On after SetBit(Off)", x, y)
			}
		}
	}
}

func TestBufferBitLayout(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 4, 16))

	b.SetBit(1, 0, image1bit.On)
	b.SetBit(1, 3, image1bit.On)
	b.SetBit(2, 9, image1bit.On)

	want := []byte{0x00, 0x09, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00}
	if !bytes.Equal(b.Pix, want) {
		t.Errorf("Pix = % X, want % X", b.Pix, want)
	}
}

func TestBufferOutOfBounds(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 8, 8))
	b.SetBit(3, 3, image1bit.On)
	before := append([]byte(nil), b.Pix...)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		b.SetBit(p.X, p.Y, image1bit.On)
		if b.BitAt(p.X, p.Y) {
			t.Errorf("BitAt(%d, %d) = On, want Off (out of bounds)", p.X, p.Y)
		}
	}
	if !bytes.Equal(b.Pix, before) {
		t.Errorf("out of bounds writes changed Pix: % X, want % X", b.Pix, before)
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 16, 16))
	draw.Draw(b, b.Bounds(), image.White, image.Point{}, draw.Src)

	b.Clear()
	once := append([]byte(nil), b.Pix...)
	b.Clear()

	for i, v := range b.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = 0x%02X after Clear(), want 0", i, v)
		}
	}
	if !bytes.Equal(once, b.Pix) {
		t.Error("second Clear() changed the buffer")
	}
}

func TestBufferPage(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 4, 16))
	b.SetBit(2, 12, image1bit.On)

	if got := b.Page(0); !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("Page(0) = % X, want all zero", got)
	}
	if got := b.Page(1); !bytes.Equal(got, []byte{0, 0, 0x10, 0}) {
		t.Errorf("Page(1) = % X, want 00 00 10 00", got)
	}
}

func TestBufferSetColor(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 2, 8))

	b.Set(0, 0, color.White)
	if !b.BitAt(0, 0) {
		t.Error("Set(0, 0, White) did not light the pixel")
	}
	b.Set(0, 0, color.Black)
	if b.BitAt(0, 0) {
		t.Error("Set(0, 0, Black) did not clear the pixel")
	}

	if c, ok := b.At(0, 0).(image1bit.Bit); !ok || c != image1bit.Off {
		t.Errorf("At(0, 0) = %v, want image1bit.Off", b.At(0, 0))
	}
}

func TestBufferColorModel(t *testing.T) {
	b := NewBuffer(image.Rect(0, 0, 4, 8))
	if b.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return image1bit.BitModel")
	}
}

func TestBufferOffsetRect(t *testing.T) {
	b := NewBuffer(image.Rect(100, 16, 104, 24))
	b.SetBit(100, 17, image1bit.On)

	if !b.BitAt(100, 17) {
		t.Error("BitAt(100, 17) = Off after SetBit(On)")
	}
	if b.Pix[0] != 0x02 {
		t.Errorf("Pix[0] = 0x%02X, want 0x02", b.Pix[0])
	}
}
