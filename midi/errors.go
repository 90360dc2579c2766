package midi

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a transport failure. The set mirrors what common
// MIDI backends can report; backends map their native errors onto it.
type ErrorCode int

const (
	Unknown ErrorCode = iota
	Unimplemented
	NoDefaultDevice
	NotAnInputDevice
	NotAnOutputDevice
	Invalid
	GenericBackend
)

func (c ErrorCode) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case Unimplemented:
		return "unimplemented"
	case NoDefaultDevice:
		return "no default device"
	case NotAnInputDevice:
		return "not an input device"
	case NotAnOutputDevice:
		return "not an output device"
	case Invalid:
		return "invalid"
	case GenericBackend:
		return "backend error"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// InterfaceError is the error type surfaced by every transport
// operation. The controller passes it through unmodified.
type InterfaceError struct {
	Code ErrorCode
	Msg  string
}

func (e *InterfaceError) Error() string {
	return "midi backend: " + e.Msg
}

// Errorf builds an InterfaceError with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *InterfaceError {
	return &InterfaceError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// The second return is false when err is not an InterfaceError.
func CodeOf(err error) (ErrorCode, bool) {
	var ie *InterfaceError
	if errors.As(err, &ie) {
		return ie.Code, true
	}
	return Unknown, false
}
