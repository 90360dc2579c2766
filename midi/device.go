package midi

import "fmt"

// Direction tells whether a device carries incoming or outgoing messages.
type Direction int

const (
	DirectionInput Direction = iota
	DirectionOutput
)

func (d Direction) String() string {
	if d == DirectionInput {
		return "input"
	}
	return "output"
}

// DeviceInfo describes one enumerated MIDI device.
type DeviceInfo struct {
	ID   int
	Name string
	Dir  Direction
}

func (d DeviceInfo) IsInput() bool  { return d.Dir == DirectionInput }
func (d DeviceInfo) IsOutput() bool { return d.Dir == DirectionOutput }

// Identifier selects a device either by its name or by its numeric id.
// Use ByName or ByID to construct one.
type Identifier struct {
	name   string
	id     int
	byName bool
}

func ByName(name string) Identifier {
	return Identifier{name: name, byName: true}
}

func ByID(id int) Identifier {
	return Identifier{id: id}
}

// Matches reports whether the identifier selects a port with the given
// name and number. Name matching is exact.
func (i Identifier) Matches(name string, number int) bool {
	if i.byName {
		return i.name == name
	}
	return i.id == number
}

func (i Identifier) String() string {
	if i.byName {
		return fmt.Sprintf("name %q", i.name)
	}
	return fmt.Sprintf("id %d", i.id)
}
