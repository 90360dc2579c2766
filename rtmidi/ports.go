package rtmidi

import (
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/lhpt2/launchpad-mini-control/debug"
	"github.com/lhpt2/launchpad-mini-control/midi"
)

// queueSize bounds how many unread inbound messages are kept before the
// oldest are dropped.
const queueSize = 1024

// InputPort adapts the driver's callback delivery to the contract's
// poll/read surface: the listener appends into a bounded queue that
// Poll and ReadN drain without blocking.
type InputPort struct {
	port drivers.In
	stop func()

	mu    sync.Mutex
	queue []midi.Message
}

func openInput(port drivers.In) (*InputPort, error) {
	in := &InputPort{port: port}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		in.push(msg.Bytes())
	})
	if err != nil {
		return nil, midi.Errorf(midi.GenericBackend, "open input %q: %v", port.String(), err)
	}
	in.stop = stop
	return in, nil
}

func (in *InputPort) push(raw []byte) {
	if len(raw) == 0 {
		return
	}

	var msg midi.Message
	msg.Status = raw[0]
	if len(raw) > 1 {
		msg.Data1 = raw[1]
	}
	if len(raw) > 2 {
		msg.Data2 = raw[2]
	}

	in.mu.Lock()
	if len(in.queue) >= queueSize {
		in.queue = in.queue[1:]
		debug.LogEvery(100, "rtmidi", "input queue full on %q, dropping oldest", in.port.String())
	}
	in.queue = append(in.queue, msg)
	in.mu.Unlock()
}

// Poll reports whether messages are waiting. Never blocks.
func (in *InputPort) Poll() (bool, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.queue) > 0, nil
}

// ReadN returns up to count queued messages, nil when nothing waits.
func (in *InputPort) ReadN(count int) ([]midi.Message, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if count <= 0 {
		return nil, midi.Errorf(midi.Invalid, "read count %d", count)
	}
	if len(in.queue) == 0 {
		return nil, nil
	}

	if count > len(in.queue) {
		count = len(in.queue)
	}
	out := make([]midi.Message, count)
	copy(out, in.queue)
	in.queue = in.queue[count:]
	return out, nil
}

// Close stops the listener. Queued messages stay readable.
func (in *InputPort) Close() error {
	if in.stop != nil {
		in.stop()
		in.stop = nil
	}
	return nil
}

// OutputPort wraps a driver send function.
type OutputPort struct {
	port drivers.Out
	send func(gomidi.Message) error
}

func openOutput(port drivers.Out) (*OutputPort, error) {
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, midi.Errorf(midi.GenericBackend, "open output %q: %v", port.String(), err)
	}
	return &OutputPort{port: port, send: send}, nil
}

func (out *OutputPort) WriteMessage(msg midi.Message) error {
	if err := out.send(gomidi.Message{msg.Status, msg.Data1, msg.Data2}); err != nil {
		return midi.Errorf(midi.GenericBackend, "write to %q: %v", out.port.String(), err)
	}
	return nil
}

// WriteMessages sends the batch as sequential writes; the driver has no
// batch primitive. Order is preserved.
func (out *OutputPort) WriteMessages(msgs []midi.Message) error {
	for _, msg := range msgs {
		if err := out.WriteMessage(msg); err != nil {
			return err
		}
	}
	debug.LogEvery(100, "rtmidi", "batch of %d to %q", len(msgs), out.port.String())
	return nil
}
