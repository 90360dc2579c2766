// Package launchpad drives a Launchpad Mini style grid controller (8x8
// note grid, scene column, control row of 8 round buttons) over any
// backend that satisfies the midi transport contract. It converts
// logical grid coordinates to and from 3-byte wire messages and tracks
// the device's double-buffering state so stateful commands stay
// consistent.
package launchpad

import "github.com/lhpt2/launchpad-mini-control/midi"

const (
	// ControlRow is the row index addressing the round control buttons.
	ControlRow = 8

	// SceneCol is the column index of the scene launch buttons on the
	// right edge of the note grid.
	SceneCol = 8

	// controlRowBase is the data1 byte of the leftmost control button.
	controlRowBase = 0x68

	noteGridRows = 8
	gridCols     = 9
)

// MessageClass distinguishes the three message kinds on the wire.
type MessageClass uint8

const (
	ClassNoteOff MessageClass = MessageClass(midi.StatusNoteOff)
	ClassNoteOn  MessageClass = MessageClass(midi.StatusNoteOn)
	ClassControl MessageClass = MessageClass(midi.StatusControl)
)

// MatPos is a logical position on the pad surface. Rows 0-7 are the
// note grid with columns 0-8 (column 8 being the scene column); row 8
// is the control row with columns 0-7.
type MatPos struct {
	Row uint8
	Col uint8
}

func NewMatPos(row, col uint8) MatPos {
	return MatPos{Row: row, Col: col}
}

// IsControlRow reports whether the position addresses a round control
// button rather than the note grid.
func (p MatPos) IsControlRow() bool {
	return p.Row > noteGridRows-1
}

// PadIdentifier is the wire identity of one pad: the message class and
// the 7-bit key used as data1. It sits between MatPos and the raw
// message in both directions.
type PadIdentifier struct {
	Class MessageClass
	Key   uint8
}

// IdentifierFromPos encodes a position. Control-row buttons get control
// class with key 0x68+col so each round button stays individually
// addressable; note-grid pads get note-on class with key 0x10*row+col.
func IdentifierFromPos(pos MatPos) PadIdentifier {
	if pos.IsControlRow() {
		return PadIdentifier{Class: ClassControl, Key: controlRowBase + pos.Col}
	}
	return PadIdentifier{Class: ClassNoteOn, Key: 0x10*pos.Row + pos.Col}
}

// KeyFromPos returns the data1 byte for a positional write.
func KeyFromPos(pos MatPos) uint8 {
	return IdentifierFromPos(pos).Key
}

// IdentifierFromMessage classifies an inbound message. Status bytes
// other than note-on and control degrade to note-off so read-side
// decoding stays total.
func IdentifierFromMessage(msg midi.Message) PadIdentifier {
	switch msg.Status {
	case midi.StatusControl:
		return PadIdentifier{Class: ClassControl, Key: msg.Data1}
	case midi.StatusNoteOn:
		return PadIdentifier{Class: ClassNoteOn, Key: msg.Data1}
	default:
		return PadIdentifier{Class: ClassNoteOff, Key: msg.Data1}
	}
}

// Pos decodes the identifier back to a logical position. Control keys
// invert by literal subtraction of the control-row base; note keys
// split into a row nibble and a column nibble.
func (id PadIdentifier) Pos() MatPos {
	if id.Class == ClassControl {
		return MatPos{Row: ControlRow, Col: id.Key - controlRowBase}
	}
	return MatPos{Row: id.Key / 0x10, Col: id.Key % 0x10}
}

// PosFromMessage decodes an inbound message straight to a position.
func PosFromMessage(msg midi.Message) MatPos {
	return IdentifierFromMessage(msg).Pos()
}

// writeMessage builds the wire message that paints pos with color.
func writeMessage(pos MatPos, color Color) midi.Message {
	id := IdentifierFromPos(pos)
	return midi.Message{Status: uint8(id.Class), Data1: id.Key, Data2: uint8(color)}
}
