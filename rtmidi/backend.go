// Package rtmidi implements the midi transport contract on top of
// gitlab.com/gomidi/midi/v2 with the rtmidi driver. It is the only
// package in the module that touches real hardware.
package rtmidi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/lhpt2/launchpad-mini-control/midi"
)

// Backend resolves and opens ports through the registered gomidi driver.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

// Devices enumerates input and output ports. Port numbers are scoped to
// their direction, matching how the driver counts them.
func (b *Backend) Devices() ([]midi.DeviceInfo, error) {
	ins := gomidi.GetInPorts()
	outs := gomidi.GetOutPorts()

	devs := make([]midi.DeviceInfo, 0, len(ins)+len(outs))
	for _, p := range ins {
		devs = append(devs, midi.DeviceInfo{ID: p.Number(), Name: p.String(), Dir: midi.DirectionInput})
	}
	for _, p := range outs {
		devs = append(devs, midi.DeviceInfo{ID: p.Number(), Name: p.String(), Dir: midi.DirectionOutput})
	}
	return devs, nil
}

// Input opens the input port matching the identifier.
func (b *Backend) Input(id midi.Identifier) (midi.Input, error) {
	port := findIn(id)
	if port == nil {
		return nil, midi.Errorf(midi.NotAnInputDevice, "no input device with %s", id)
	}
	return openInput(port)
}

// Output opens the output port matching the identifier.
func (b *Backend) Output(id midi.Identifier) (midi.Output, error) {
	port := findOut(id)
	if port == nil {
		return nil, midi.Errorf(midi.NotAnOutputDevice, "no output device with %s", id)
	}
	return openOutput(port)
}

// InOut opens the input and output ports sharing one device name.
func (b *Backend) InOut(name string) (midi.Input, midi.Output, error) {
	inPort := findIn(midi.ByName(name))
	if inPort == nil {
		return nil, nil, midi.Errorf(midi.NotAnInputDevice, "no input with name %q", name)
	}
	outPort := findOut(midi.ByName(name))
	if outPort == nil {
		return nil, nil, midi.Errorf(midi.NotAnOutputDevice, "no output with name %q", name)
	}

	in, err := openInput(inPort)
	if err != nil {
		return nil, nil, err
	}
	out, err := openOutput(outPort)
	if err != nil {
		in.Close()
		return nil, nil, err
	}
	return in, out, nil
}

// DefaultInput opens the first enumerated input port. The driver has no
// platform-default notion, so first-enumerated is the closest analogue.
func (b *Backend) DefaultInput() (midi.Input, error) {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		return nil, midi.Errorf(midi.NoDefaultDevice, "no input devices present")
	}
	return openInput(ins[0])
}

// DefaultOutput opens the first enumerated output port.
func (b *Backend) DefaultOutput() (midi.Output, error) {
	outs := gomidi.GetOutPorts()
	if len(outs) == 0 {
		return nil, midi.Errorf(midi.NoDefaultDevice, "no output devices present")
	}
	return openOutput(outs[0])
}

// Close shuts down the driver and every port opened through it.
func (b *Backend) Close() error {
	gomidi.CloseDriver()
	return nil
}

func findIn(id midi.Identifier) drivers.In {
	for _, p := range gomidi.GetInPorts() {
		if id.Matches(p.String(), p.Number()) {
			return p
		}
	}
	return nil
}

func findOut(id midi.Identifier) drivers.Out {
	for _, p := range gomidi.GetOutPorts() {
		if id.Matches(p.String(), p.Number()) {
			return p
		}
	}
	return nil
}
