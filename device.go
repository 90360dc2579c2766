package launchpad

import "github.com/lhpt2/launchpad-mini-control/midi"

const (
	// Duty-cycle bank selectors. The device keeps data2 within 7 bits
	// by reserving its high nibble for a 4-bit numerator sub-range, so
	// numerators split across two control keys.
	dutyLowBank  = 0x1E // numerators 1-8
	dutyHighBank = 0x1F // numerators 9-16

	// Velocity bits a single-buffered device needs set for an LED
	// write to latch visibly.
	latchBits = 0x0C
)

// Device drives one grid controller. It exclusively owns its input and
// output ports for its lifetime and holds the buffer-mode state the
// hardware itself never reports back. All commands are synchronous and
// propagate transport errors unmodified; none retry.
type Device struct {
	in  midi.Input
	out midi.Output

	// Buffer state is kept as two independent fields and only combined
	// into the control byte at send time.
	buffer BufferSetting
	copy   bool
}

// New wraps an already-resolved input/output port pair. The zero buffer
// state does not imply the device itself is in a known state; callers
// reset and select a mode explicitly.
func New(in midi.Input, out midi.Output) *Device {
	return &Device{in: in, out: out}
}

// Reset restores the device to its power-on state.
func (d *Device) Reset() error {
	return d.SendControlMessage(0x00, 0x00)
}

// SetPosition lights one pad. Note-grid positions go out as note-on
// writes, control-row positions through the control-write path.
func (d *Device) SetPosition(row, col uint8, color Color) error {
	return d.out.WriteMessage(writeMessage(NewMatPos(row, col), color))
}

// SetAll paints the whole note grid including the scene column, in
// row-major order. Devices apply writes sequentially, so the order is
// part of the contract.
func (d *Device) SetAll(color Color) error {
	msgs := make([]midi.Message, 0, noteGridRows*gridCols)
	for row := uint8(0); row < noteGridRows; row++ {
		for col := uint8(0); col < gridCols; col++ {
			msgs = append(msgs, writeMessage(MatPos{Row: row, Col: col}, color))
		}
	}
	return d.out.WriteMessages(msgs)
}

// SetMatrix paints the note grid from an 8x9 color matrix, row-major.
func (d *Device) SetMatrix(mat [8][9]Color) error {
	msgs := make([]midi.Message, 0, noteGridRows*gridCols)
	for row := range mat {
		for col := range mat[row] {
			msgs = append(msgs, writeMessage(MatPos{Row: uint8(row), Col: uint8(col)}, mat[row][col]))
		}
	}
	return d.out.WriteMessages(msgs)
}

// SetFirstRow paints the 8 round control buttons.
func (d *Device) SetFirstRow(color Color) error {
	msgs := make([]midi.Message, 0, 8)
	for i := uint8(0); i < 8; i++ {
		msgs = append(msgs, midi.Message{
			Status: midi.StatusControl,
			Data1:  controlRowBase + i,
			Data2:  uint8(color),
		})
	}
	return d.out.WriteMessages(msgs)
}

// Blackout turns off the note grid, leaving the control row alone.
func (d *Device) Blackout() error {
	return d.SetAll(Black)
}

// FullBlackout turns off the note grid and the control row.
func (d *Device) FullBlackout() error {
	if err := d.SetAll(Black); err != nil {
		return err
	}
	for i := uint8(0); i < 8; i++ {
		if err := d.SendControlMessage(controlRowBase+i, uint8(Black)); err != nil {
			return err
		}
	}
	return nil
}

// SelectMode tells the device how to lay out note keys on the grid.
func (d *Device) SelectMode(mode GridMode) error {
	return d.SendControlMessage(0x00, uint8(mode))
}

// SetBufferMode configures the display buffers. copy requests that the
// newly displayed buffer be copied into the updating one on swap.
func (d *Device) SetBufferMode(setting BufferSetting, copy bool) error {
	d.buffer = setting
	d.copy = copy
	return d.SendControlMessage(0x00, d.bufferByte())
}

// bufferByte serializes the buffer state: copy flag in the high nibble,
// setting in the low nibble, combined by OR. This is the only place the
// two fields meet.
func (d *Device) bufferByte() uint8 {
	b := uint8(0x20)
	if d.copy {
		b = 0x30
	}
	return b | uint8(d.buffer)
}

// DisableDoubleBuffering returns to plain single buffering on buffer 0.
func (d *Device) DisableDoubleBuffering() error {
	return d.SetBufferMode(ZeroOnly, false)
}

// SwapBuffers flips which buffer is displayed, carrying the given copy
// flag. From any state other than OneActive the swap lands on
// OneActive, so it also serves to enter double buffering.
func (d *Device) SwapBuffers(copy bool) error {
	if d.buffer == OneActive {
		return d.SetBufferMode(ZeroActive, copy)
	}
	return d.SetBufferMode(OneActive, copy)
}

// HardSwap flips buffers without copying.
func (d *Device) HardSwap() error {
	return d.SwapBuffers(false)
}

// IsDoubleBuffered reports whether both buffers are in use.
func (d *Device) IsDoubleBuffered() bool {
	return d.buffer == OneActive || d.buffer == ZeroActive
}

// SetDutyCycle sets the LED refresh ratio. The numerator clamps to
// [1,16] and the denominator to [3,18]; out-of-range inputs are a
// leniency, not an error.
func (d *Device) SetDutyCycle(numerator, denominator uint8) error {
	numerator = clamp(numerator, 1, 16)
	denominator = clamp(denominator, 3, 18)

	data1 := uint8(dutyHighBank)
	data2 := 0x10*(numerator-9) + (denominator - 3)
	if numerator < 9 {
		data1 = dutyLowBank
		data2 = 0x10*(numerator-1) + (denominator - 3)
	}
	return d.SendControlMessage(data1, data2)
}

// SendNoteMessage sends a raw note write. On a single-buffered device
// the latch bits are forced into the velocity, otherwise the LED would
// not light.
func (d *Device) SendNoteMessage(on bool, key, velocity uint8) error {
	if !d.IsDoubleBuffered() {
		velocity |= latchBits
	}

	status := midi.StatusNoteOff
	if on {
		status = midi.StatusNoteOn
	}
	return d.out.WriteMessage(midi.Message{Status: status, Data1: key, Data2: velocity})
}

// SendControlMessage sends a raw control write.
func (d *Device) SendControlMessage(data1, data2 uint8) error {
	return d.out.WriteMessage(midi.Message{Status: midi.StatusControl, Data1: data1, Data2: data2})
}

// SendMessages writes a prepared batch as-is.
func (d *Device) SendMessages(msgs []midi.Message) error {
	return d.out.WriteMessages(msgs)
}

// Poll reports whether inbound messages are waiting.
func (d *Device) Poll() (bool, error) {
	return d.in.Poll()
}

// ReadSingleMessage reads one pending message, or nil when none is
// waiting. Decoding is the caller's business, see PosFromMessage.
func (d *Device) ReadSingleMessage() (*midi.Message, error) {
	msgs, err := d.in.ReadN(1)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	return &msgs[0], nil
}

// ReadMessages reads up to n pending messages.
func (d *Device) ReadMessages(n int) ([]midi.Message, error) {
	return d.in.ReadN(n)
}

func clamp(v, lo, hi uint8) uint8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
