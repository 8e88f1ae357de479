// Package st7565 controls a monochrome LCD module driven by a ST7565R
// controller via SPI.
//
// The ST7565R is a 65×132 dot matrix LCD controller with a page addressed
// display RAM: each byte holds a vertical strip of 8 pixels. This driver
// supports the Electronic Assembly modules built around it and implements the
// display.Drawer interface from periph.io.
//
// # Supported Modules
//
//	Model    Resolution  Regulator ratio  Default contrast
//	DOGM128  128×64      0x27             0x16
//	DOGM132  132×32      0x23             0x1F
//	DOGL128  128×64      0x27             0x10
//
// # Hardware Connection
//
// Connect the module to your system via SPI (write only, mode 3):
//
//	Display Pin → System Pin
//	VSS         → GND
//	VDD         → 3.3V
//	SCL         → SPI Clock (SCLK)
//	SI          → SPI Data (MOSI)
//	A0          → GPIO (any available pin)
//	CS1B        → SPI Chip Select, or a GPIO given as Opts.CS
//	RESET       → Optional: GPIO given as Opts.RST
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/st7565"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/ssd1306/image1bit"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("")
//		defer p.Close()
//
//		dev, _ := st7565.NewSPI(p, gpioreg.ByName("GPIO25"), &st7565.Opts{
//			Model: st7565.DOGM132,
//			RST:   gpioreg.ByName("GPIO24"),
//		})
//		defer dev.Halt()
//
//		dev.Rectangle(0, 0, 131, 31, image1bit.On)
//		dev.Locate(4, 4)
//		dev.Print("Hello")
//	}
//
// # Update Modes
//
// Every drawing call writes to a framebuffer held by the driver. In Auto mode
// (the default after initialization) the whole framebuffer is sent to the
// display once at the end of each call. In Manual mode nothing is sent until
// Flush is called, which is faster when composing a screen from many shapes:
//
//	dev.SetUpdateMode(st7565.Manual)
//	dev.FillRect(0, 0, 40, 20, image1bit.On)
//	dev.Circle(80, 16, 10, image1bit.On)
//	dev.Flush()
//
// Batch groups several calls under a single update while staying in Auto
// mode.
//
// # Text
//
// Characters 32 to 127 are drawn with the active font, at the text cursor set
// with Locate. The built-in font is basicfont.Face7x13. Fonts in the GLCD Font
// Creator layout can be loaded with lcdfont.Parse, and any font.Face can be
// rasterized with lcdfont.FromFace.
//
// # Display Modes
//
// SetDisplayMode switches the display on, off or to sleep, selects normal or
// inverse video and rotates the display by 180° (ModeTopView). SetContrast
// changes the electronic volume (0-63) and SetStartLine scrolls the display
// RAM vertically.
//
// # Datasheet
//
// https://www.lcd-module.de/eng/pdf/zubehoer/st7565r.pdf
//
// # Compatibility with periph.io
//
// Dev implements display.Drawer, so any image.Image can be drawn to it and it
// can be used with any periph.io tool or library expecting a display.Drawer.
package st7565
