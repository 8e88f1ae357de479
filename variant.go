package st7565

import (
	"fmt"
	"strings"
)

// Model identifies a display module built around the ST7565R.
type Model int

// Supported display modules.
const (
	DOGM128 Model = iota // EA DOGM128, 128x64, 2.3"
	DOGM132              // EA DOGM132, 132x32, 2.1"
	DOGL128              // EA DOGL128, 128x64, 2.8"
)

// Variant holds the fixed characteristics of a display module.
type Variant struct {
	W, H     int  // Display size in pixels; H is a multiple of 8
	Ratio    byte // Voltage regulator resistor ratio command
	Contrast byte // Default electronic volume, 0-63
}

// Pages returns the number of 8-pixel pages.
func (v Variant) Pages() int {
	return v.H / 8
}

var variants = map[Model]Variant{
	DOGM128: {W: 128, H: 64, Ratio: 0x27, Contrast: 0x16},
	DOGM132: {W: 132, H: 32, Ratio: 0x23, Contrast: 0x1F},
	DOGL128: {W: 128, H: 64, Ratio: 0x27, Contrast: 0x10},
}

var modelNames = map[Model]string{
	DOGM128: "DOGM128",
	DOGM132: "DOGM132",
	DOGL128: "DOGL128",
}

// Variant returns the characteristics of m. ok is false for an unknown model.
func (m Model) Variant() (v Variant, ok bool) {
	v, ok = variants[m]
	return
}

func (m Model) String() string {
	if s, ok := modelNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// ParseModel returns the model named s, case insensitive.
func ParseModel(s string) (Model, error) {
	for m, name := range modelNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("st7565: unknown model %q", s)
}
