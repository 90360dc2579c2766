// Package midi defines the transport contract between the launchpad
// controller and a concrete MIDI backend: the 3-byte wire message, the
// narrow input/output port capabilities, device discovery, and the error
// taxonomy backends must surface. The package contains no I/O of its own.
package midi

// Raw status bytes for the three channel message classes the device uses.
const (
	StatusNoteOff uint8 = 0x80
	StatusNoteOn  uint8 = 0x90
	StatusControl uint8 = 0xB0
)

// Message is the 3-byte unit exchanged with the device: a status byte,
// the identifying key (data1) and the payload (data2, color or control
// value).
type Message struct {
	Status uint8
	Data1  uint8
	Data2  uint8
}
