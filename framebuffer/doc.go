// Package framebuffer provides the 1-bit page-packed image format used by
// the ST7565R display controller.
//
// The ST7565R display RAM is organized in pages. A page is a horizontal band
// 8 pixels high; each byte of a page holds one column of 8 vertical pixels,
// least significant bit on top. Pages are stored one after the other.
//
// Memory layout example for a 4x16 image (2 pages):
//
//	Byte:   0    1    2    3    4    5    6    7
//	Page:   0    0    0    0    1    1    1    1
//	Column: 0    1    2    3    0    1    2    3
//	Rows:   0-7  0-7  0-7  0-7  8-15 8-15 8-15 8-15
//
// Pixel (x, y) is bit y%8 of byte x + (y/8)*width.
//
// Example usage:
//
//	// Create a 128x64 buffer
//	buf := framebuffer.NewBuffer(image.Rect(0, 0, 128, 64))
//
//	// Light a pixel
//	buf.SetBit(10, 20, image1bit.On)
//
//	// Read it back
//	lit := buf.BitAt(10, 20)
//
//	// Use with standard Go image operations
//	draw.Draw(buf, buf.Bounds(), image.White, image.Point{}, draw.Src)
package framebuffer
