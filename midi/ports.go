package midi

// Input is the read side of a device connection. Poll is non-blocking;
// callers drive their own loop around it.
type Input interface {
	// Poll reports whether messages are waiting to be read.
	Poll() (bool, error)

	// ReadN reads up to count messages. A nil slice means nothing was
	// pending; it is not an error.
	ReadN(count int) ([]Message, error)
}

// Output is the write side of a device connection.
type Output interface {
	WriteMessage(msg Message) error
	WriteMessages(msgs []Message) error
}

// Interface is the capability set a MIDI backend has to provide:
// enumeration, resolution of ports by identifier, and platform defaults.
// Discovery never falls back to a different device than the one asked
// for; when no match exists the operation fails with a typed error and
// the caller decides what to do next.
type Interface interface {
	// Devices enumerates all known devices, inputs and outputs.
	Devices() ([]DeviceInfo, error)

	// Input opens the input port matching the identifier.
	// Fails with NotAnInputDevice when there is no match.
	Input(id Identifier) (Input, error)

	// Output opens the output port matching the identifier.
	// Fails with NotAnOutputDevice when there is no match.
	Output(id Identifier) (Output, error)

	// InOut opens the input and output ports sharing the given name.
	InOut(name string) (Input, Output, error)

	// DefaultInput opens the platform default input.
	// Fails with NoDefaultDevice when none exists.
	DefaultInput() (Input, error)

	// DefaultOutput opens the platform default output.
	// Fails with NoDefaultDevice when none exists.
	DefaultOutput() (Output, error)

	// Close releases the backend and everything opened through it.
	Close() error
}
