package st7565

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"

	"github.com/flavioheleno/st7565/framebuffer"
	"github.com/flavioheleno/st7565/lcdfont"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// ST7565R commands.
const (
	cmdColumnLow     = 0x00 // | low nibble of the column address
	cmdColumnHigh    = 0x10 // | high nibble of the column address
	cmdPowerControl  = 0x2F // Booster, regulator and follower on
	cmdStartLine     = 0x40 // | display start line 0-63
	cmdContrast      = 0x81 // Electronic volume, followed by 0-63
	cmdADCNormal     = 0xA0
	cmdADCReverse    = 0xA1
	cmdBias9         = 0xA2 // LCD bias 1/9
	cmdAllPointsOff  = 0xA4 // Display RAM content
	cmdAllPointsOn   = 0xA5
	cmdNormalDisplay = 0xA6
	cmdInvertDisplay = 0xA7
	cmdIndicatorOff  = 0xAC // Static indicator, followed by mode
	cmdDisplayOff    = 0xAE
	cmdDisplayOn     = 0xAF
	cmdPageAddress   = 0xB0 // | page 0-7
	cmdCOMNormal     = 0xC0
	cmdCOMReverse    = 0xC8
	cmdBoosterRatio  = 0xF8 // Followed by ratio
)

// In the 180° orientation the segment driver starts 4 columns further.
const topViewColumnOffset = 0x04

// UpdateMode selects when the framebuffer is copied to the display.
type UpdateMode int

const (
	// Manual defers transfers until Flush is called.
	Manual UpdateMode = iota
	// Auto copies the framebuffer after every drawing call.
	Auto
)

// Mode is a display setting accepted by SetDisplayMode.
type Mode int

// Display settings.
const (
	ModeOn         Mode = iota // Display on, wakes up from sleep
	ModeOff                    // Display off
	ModeSleep                  // Display off and power save
	ModeNormal                 // Lit pixels are dark
	ModeInverse                // Lit pixels are clear
	ModeBottomView             // Normal orientation
	ModeTopView                // Rotated by 180°
	ModeContrast               // Model default contrast
)

// Opts is the configuration for the display.
type Opts struct {
	// Model of the display module (default: DOGM128).
	Model Model

	// TopView starts the display rotated by 180°.
	TopView bool
	// Contrast overrides the model default contrast when in 1-63. 0 keeps
	// the model default; call SetContrast(0) after New for the lowest
	// contrast.
	Contrast byte

	// Font is the initial text font (default: lcdfont.Default()).
	Font *lcdfont.Font

	// Logger receives debug diagnostics (default: discarded).
	Logger *slog.Logger

	// SPI only
	CS  gpio.PinOut      // Chip select pin (optional, nil if handled by the SPI port)
	RST gpio.PinOut      // Reset pin (optional, nil if not used)
	Hz  physic.Frequency // Bus clock (default: 20MHz)
}

// Dev is the device handle for the display.
//
// A Dev is not safe for concurrent use.
type Dev struct {
	bus     Bus
	log     *slog.Logger
	model   Model
	variant Variant
	rect    image.Rectangle

	buffer *framebuffer.Buffer

	// State
	topView    bool
	autoUpdate bool
	batchDepth int

	// Text
	cursor image.Point
	font   *lcdfont.Font
}

// NewSPI creates a new display connected via SPI.
//
// The SPI port is configured for Mode3 (CPOL=1, CPHA=1), 8-bit transfers at
// opts.Hz. The dc (A0) GPIO pin must be provided.
//
// opts can be nil to use defaults (DOGM128).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7565: a dc pin is required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	if _, ok := opts.Model.Variant(); !ok {
		return nil, fmt.Errorf("st7565: unsupported model %s", opts.Model)
	}
	hz := opts.Hz
	if hz == 0 {
		hz = 20 * physic.MegaHertz
	}
	c, err := p.Connect(hz, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("st7565: failed to connect SPI: %w", err)
	}
	return New(&spiBus{c: c, dc: dc, cs: opts.CS, rst: opts.RST}, opts)
}

// New creates a new display on an arbitrary transport and initializes it.
//
// opts can be nil to use defaults (DOGM128).
func New(bus Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	v, ok := opts.Model.Variant()
	if !ok {
		return nil, fmt.Errorf("st7565: unsupported model %s", opts.Model)
	}
	if opts.Contrast > 63 {
		return nil, fmt.Errorf("st7565: contrast %d out of range 0-63", opts.Contrast)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rect := image.Rect(0, 0, v.W, v.H)
	d := &Dev{
		bus:     bus,
		log:     logger,
		model:   opts.Model,
		variant: v,
		rect:    rect,
		buffer:  framebuffer.NewBuffer(rect),
		font:    lcdfont.Default(),
	}
	if opts.Font != nil {
		if err := d.SetFont(opts.Font); err != nil {
			return nil, err
		}
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// init resets the controller and sends the initialization sequence.
func (d *Dev) init(opts *Opts) error {
	if err := d.bus.Reset(); err != nil {
		return err
	}

	cmds := []byte{
		cmdStartLine,          // Display start line 0
		cmdADCReverse,         // Segment order
		cmdCOMNormal,          // COM0 to COM63
		cmdNormalDisplay,      // Lit pixels are dark
		cmdBias9,              // Bias 1/9
		cmdPowerControl,       // Booster, regulator and follower on
		cmdBoosterRatio, 0x00, // Booster 4x
		d.variant.Ratio,       // Regulator resistor ratio
		cmdContrast, d.variant.Contrast,
		cmdIndicatorOff, 0x00, // No static indicator
		cmdDisplayOn,
	}
	if err := d.sendCommands(cmds...); err != nil {
		return err
	}

	// Clear display RAM
	d.buffer.Clear()
	if err := d.Flush(); err != nil {
		return err
	}
	d.autoUpdate = true
	d.cursor = image.Point{}

	if opts.TopView {
		if err := d.SetDisplayMode(ModeTopView); err != nil {
			return err
		}
	}
	if opts.Contrast != 0 {
		if err := d.SetContrast(opts.Contrast); err != nil {
			return err
		}
	}
	d.log.Debug("st7565: initialized", "model", d.model, "width", d.variant.W, "height", d.variant.H)
	return nil
}

// sendCommands sends command bytes one transfer at a time.
func (d *Dev) sendCommands(cmds ...byte) error {
	for _, c := range cmds {
		if err := d.bus.Command(c); err != nil {
			return err
		}
	}
	return nil
}

// Flush copies the framebuffer to the display RAM.
//
// Each page is addressed with the column low nibble, column high nibble and
// page commands, then streamed as one data transfer of width bytes.
func (d *Dev) Flush() error {
	low := byte(cmdColumnLow)
	if d.topView {
		low |= topViewColumnOffset
	}
	for page := 0; page < d.buffer.Pages(); page++ {
		if err := d.sendCommands(low, cmdColumnHigh, cmdPageAddress+byte(page)); err != nil {
			return err
		}
		if err := d.bus.Data(d.buffer.Page(page)); err != nil {
			return err
		}
	}
	return nil
}

// SetUpdateMode selects whether drawing calls flush the framebuffer. It does
// not flush by itself.
func (d *Dev) SetUpdateMode(m UpdateMode) {
	d.autoUpdate = m == Auto
}

// UpdateMode returns the current update mode.
func (d *Dev) UpdateMode() UpdateMode {
	if d.autoUpdate {
		return Auto
	}
	return Manual
}

// Batch runs fn with flushing suspended. When the outermost batch returns the
// framebuffer is flushed once if the update mode is Auto, even when fn fails
// or panics.
func (d *Dev) Batch(fn func() error) error {
	return d.batch(fn)
}

func (d *Dev) batch(fn func() error) (err error) {
	d.batchDepth++
	defer func() {
		d.batchDepth--
		if d.batchDepth == 0 && d.autoUpdate {
			if ferr := d.Flush(); err == nil {
				err = ferr
			}
		}
	}()
	return fn()
}

// SetDisplayMode changes a display setting.
//
// Switching between ModeTopView and ModeBottomView flushes the framebuffer
// because the column addressing changes.
func (d *Dev) SetDisplayMode(m Mode) error {
	switch m {
	case ModeOn:
		return d.sendCommands(cmdAllPointsOff, cmdDisplayOn)
	case ModeOff:
		return d.sendCommands(cmdDisplayOff)
	case ModeSleep:
		return d.sendCommands(cmdAllPointsOn, cmdDisplayOff)
	case ModeNormal:
		return d.sendCommands(cmdNormalDisplay)
	case ModeInverse:
		return d.sendCommands(cmdInvertDisplay)
	case ModeBottomView:
		d.topView = false
		if err := d.sendCommands(cmdADCReverse, cmdCOMNormal); err != nil {
			return err
		}
		return d.Flush()
	case ModeTopView:
		d.topView = true
		if err := d.sendCommands(cmdADCNormal, cmdCOMReverse); err != nil {
			return err
		}
		return d.Flush()
	case ModeContrast:
		return d.sendCommands(cmdContrast, d.variant.Contrast)
	default:
		return fmt.Errorf("st7565: unknown display mode %d", m)
	}
}

// SetContrast sets the display contrast (0-63). Values above 63 are ignored.
func (d *Dev) SetContrast(contrast byte) error {
	if contrast >= 64 {
		d.log.Debug("st7565: contrast ignored", "contrast", contrast)
		return nil
	}
	return d.sendCommands(cmdContrast, contrast&0x3F)
}

// TopView reports whether the display is rotated by 180°.
func (d *Dev) TopView() bool {
	return d.topView
}

// Invert inverts the display (clear pixels on a dark background).
func (d *Dev) Invert(invert bool) error {
	if invert {
		return d.SetDisplayMode(ModeInverse)
	}
	return d.SetDisplayMode(ModeNormal)
}

// SetStartLine sets the display RAM line shown at the top of the screen,
// scrolling the display vertically. line must be between 0 and 63.
func (d *Dev) SetStartLine(line int) error {
	if line < 0 || line > 63 {
		return fmt.Errorf("st7565: invalid start line %d", line)
	}
	return d.sendCommands(cmdStartLine | byte(line))
}

// Halt turns the display off.
//
// ModeOn turns it back on.
func (d *Dev) Halt() error {
	return d.SetDisplayMode(ModeOff)
}

// Clear turns every pixel off.
func (d *Dev) Clear() error {
	return d.batch(func() error {
		d.buffer.Clear()
		return nil
	})
}

// Buffer returns the framebuffer. Changes made to it are shown on the next
// flush.
func (d *Dev) Buffer() *framebuffer.Buffer {
	return d.buffer
}

// Model returns the display module.
func (d *Dev) Model() Model {
	return d.model
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// src is converted to 1 bit and composed into the framebuffer. The display is
// updated when the update mode is Auto.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	return d.batch(func() error {
		if img, ok := src.(*framebuffer.Buffer); ok && r == d.rect && img.Rect == d.rect && sp == (image.Point{}) {
			copy(d.buffer.Pix, img.Pix)
			return nil
		}
		draw.Src.Draw(d.buffer, r, src, sp)
		return nil
	})
}

// Write replaces the framebuffer with pixels and flushes it.
//
// The format is the one of framebuffer.Buffer.Pix: pages of 8 pixel high
// bands, one byte per column.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer.Pix) {
		return 0, fmt.Errorf("st7565: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer.Pix), len(pixels))
	}
	copy(d.buffer.Pix, pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7565.Dev{%s, %dx%d}", d.model, d.rect.Dx(), d.rect.Dy())
}

var _ display.Drawer = &Dev{}
