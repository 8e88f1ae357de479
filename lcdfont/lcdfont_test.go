package lcdfont

import (
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// testFont builds a 3x5 descriptor where every glyph has advance width 2
// and only 'A' has pixels: a vertical bar in column 1, rows 0 to 4.
func testFont() []byte {
	const glyphSize = 1 + 3*1
	data := make([]byte, headerSize+(Last-First+1)*glyphSize)
	data[0], data[1], data[2], data[3] = glyphSize, 3, 5, 1
	for c := First; c <= Last; c++ {
		data[headerSize+(c-First)*glyphSize] = 2
	}
	a := headerSize + ('A'-First)*glyphSize
	data[a+1+1] = 0x1F
	return data
}

func TestParse(t *testing.T) {
	valid := testFont()

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr string
	}{
		{"valid", func(b []byte) []byte { return b }, ""},
		{"short header", func(b []byte) []byte { return b[:3] }, "shorter than header"},
		{"zero width", func(b []byte) []byte { b[1] = 0; return b }, "invalid cell size"},
		{"zero height", func(b []byte) []byte { b[2] = 0; return b }, "invalid cell size"},
		{"strip too small", func(b []byte) []byte { b[2] = 9; return b }, "cannot hold 9 rows"},
		{"glyph too small", func(b []byte) []byte { b[1] = 4; return b }, "cannot hold 4 strips"},
		{"truncated", func(b []byte) []byte { return b[:len(b)-1] }, "truncated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), valid...))
			f, err := Parse(data)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				if f.Width != 3 || f.Height != 5 || f.StripSize != 1 || f.GlyphSize != 4 {
					t.Errorf("Parse() = %+v, want 3x5 cell, 1 byte strips, 4 byte glyphs", f)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGlyphRange(t *testing.T) {
	f, err := Parse(testFont())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		c    byte
		want bool
	}{
		{0, false},
		{'\n', false},
		{31, false},
		{32, true},
		{'A', true},
		{127, true},
		{128, false},
		{255, false},
	}
	for _, tt := range tests {
		if _, ok := f.Glyph(tt.c); ok != tt.want {
			t.Errorf("Glyph(%d) ok = %v, want %v", tt.c, ok, tt.want)
		}
	}
}

func TestGlyphBit(t *testing.T) {
	f, err := Parse(testFont())
	if err != nil {
		t.Fatal(err)
	}
	g, _ := f.Glyph('A')
	if g.Width != 2 {
		t.Errorf("Width = %d, want 2", g.Width)
	}
	for col := 0; col < 3; col++ {
		for row := 0; row < 5; row++ {
			if want := col == 1; g.Bit(col, row) != want {
				t.Errorf("Bit(%d, %d) = %v, want %v", col, row, g.Bit(col, row), want)
			}
		}
	}
}

func TestGlyphBitMultiByteStrip(t *testing.T) {
	// 1x12 cell, 2 bytes per strip: row 9 lives in bit 1 of the second byte.
	const glyphSize = 1 + 1*2
	data := make([]byte, headerSize+(Last-First+1)*glyphSize)
	data[0], data[1], data[2], data[3] = glyphSize, 1, 12, 2
	off := headerSize + ('x'-First)*glyphSize
	data[off] = 1
	data[off+2] = 0x02

	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := f.Glyph('x')
	for row := 0; row < 12; row++ {
		if want := row == 9; g.Bit(0, row) != want {
			t.Errorf("Bit(0, %d) = %v, want %v", row, g.Bit(0, row), want)
		}
	}
}

func TestTextWidth(t *testing.T) {
	f, err := Parse(testFont())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"A", 2},
		{"ABC", 6},
		{"A\nB", 4},
		{"A\x80B", 4},
	}
	for _, tt := range tests {
		if got := f.TextWidth(tt.s); got != tt.want {
			t.Errorf("TextWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestFromFace(t *testing.T) {
	f, err := FromFace(basicfont.Face7x13)
	if err != nil {
		t.Fatalf("FromFace() error = %v", err)
	}
	if f.Width != 7 || f.Height != 13 || f.StripSize != 2 || f.GlyphSize != 15 {
		t.Errorf("FromFace() = %+v, want 7x13 cell, 2 byte strips, 15 byte glyphs", f)
	}
	if len(f.Bytes()) != headerSize+96*15 {
		t.Errorf("len(Bytes()) = %d, want %d", len(f.Bytes()), headerSize+96*15)
	}

	lit := func(c byte) int {
		g, _ := f.Glyph(c)
		n := 0
		for col := 0; col < f.Width; col++ {
			for row := 0; row < f.Height; row++ {
				if g.Bit(col, row) {
					n++
				}
			}
		}
		return n
	}
	if n := lit(' '); n != 0 {
		t.Errorf("space has %d lit pixels, want 0", n)
	}
	if n := lit('A'); n == 0 {
		t.Error("'A' has no lit pixels")
	}
	if g, _ := f.Glyph('A'); g.Width != 7 {
		t.Errorf("'A' advance = %d, want 7", g.Width)
	}
}

func TestDefault(t *testing.T) {
	a, b := Default(), Default()
	if a != b {
		t.Error("Default() returned different fonts")
	}
	if a.Height != 13 {
		t.Errorf("Default().Height = %d, want 13", a.Height)
	}
}
