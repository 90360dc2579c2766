package launchpad

import "strings"

// Color is one of the 16 values the device can display. The byte packs
// the green intensity into the high nibble and the red intensity into
// the low nibble, each 0-3. Values outside the palette are not
// representable; everything works by table lookup.
type Color uint8

const (
	Black          Color = 0x00
	DimGreen       Color = 0x10
	MedGreen       Color = 0x20
	Green          Color = 0x30
	GreenYellow    Color = 0x31
	DimGreenYellow Color = 0x21
	Yellow         Color = 0x32
	MedYellow      Color = 0x22
	DimYellow      Color = 0x11
	Amber          Color = 0x33
	Orange         Color = 0x23
	DimOrange      Color = 0x12
	RedOrange      Color = 0x13
	Red            Color = 0x03
	MedRed         Color = 0x02
	DimRed         Color = 0x01
)

// Gradient orders the palette along a rough green-to-red spectrum,
// useful for mapping scalar values onto pads.
var Gradient = [16]Color{
	Black, DimGreen, MedGreen, Green,
	GreenYellow, DimGreenYellow, Yellow, MedYellow,
	DimYellow, Amber, Orange, DimOrange,
	RedOrange, Red, MedRed, DimRed,
}

var colorNames = map[string]Color{
	"black":            Black,
	"dim-green":        DimGreen,
	"med-green":        MedGreen,
	"green":            Green,
	"green-yellow":     GreenYellow,
	"dim-green-yellow": DimGreenYellow,
	"yellow":           Yellow,
	"med-yellow":       MedYellow,
	"dim-yellow":       DimYellow,
	"amber":            Amber,
	"orange":           Orange,
	"dim-orange":       DimOrange,
	"red-orange":       RedOrange,
	"red":              Red,
	"med-red":          MedRed,
	"dim-red":          DimRed,
}

// ColorByName resolves a palette name like "green" or "dim-red".
// Matching is case-insensitive.
func ColorByName(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(name)]
	return c, ok
}

func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return "black"
}

// Levels returns the green and red intensities, each 0-3.
func (c Color) Levels() (green, red uint8) {
	return uint8(c) >> 4, uint8(c) & 0x0F
}

// RGB maps the color onto 8-bit RGB for rendering off-device.
func (c Color) RGB() [3]uint8 {
	green, red := c.Levels()
	return [3]uint8{red * 85, green * 85, 0}
}

// BufferSetting is the low nibble of the buffer-mode control byte. The
// device has two display buffers; the setting selects which are in use
// and which is visible.
type BufferSetting uint8

const (
	ZeroOnly   BufferSetting = 0x00 // single buffering on buffer 0
	OneActive  BufferSetting = 0x01 // double buffering, buffer 1 visible
	ZeroActive BufferSetting = 0x04 // double buffering, buffer 0 visible
	OneOnly    BufferSetting = 0x05 // single buffering on buffer 1
)

// GridMode selects how the device lays out note keys on the grid.
type GridMode uint8

const (
	ModeXY       GridMode = 0x01
	ModeDrumRack GridMode = 0x02
)

// GridModeByName resolves "xy" or "drumrack".
func GridModeByName(name string) (GridMode, bool) {
	switch strings.ToLower(name) {
	case "xy":
		return ModeXY, true
	case "drumrack", "drum-rack":
		return ModeDrumRack, true
	}
	return 0, false
}
