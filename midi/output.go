package midi

import (
	"errors"
	"fmt"

	"go-genseq/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

var (
	ErrPortNotFound = errors.New("midi port not found")
	ErrBadChannel   = errors.New("midi channel out of range")
)

// allNotesOff is the channel mode controller that silences a channel
const allNotesOff uint8 = 123

// Output sends notes to a MIDI port. Channels are 1-16 and converted to
// the 0-15 wire value here.
type Output struct {
	name string
	send func(gomidi.Message) error
}

// NewOutput wraps a send function. A nil send drops every message.
func NewOutput(name string, send func(gomidi.Message) error) *Output {
	return &Output{name: name, send: send}
}

// OpenOutput finds an output port by name and opens it. An empty name
// picks the first available port.
func OpenOutput(name string) (*Output, error) {
	_, outs, _ := scanPorts(portScanTimeout)
	for _, port := range outs {
		if name != "" && !matchPort(port.String(), name) {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, fmt.Errorf("open output %s: %w", port.String(), err)
		}
		debug.Log("midi", "output %s opened", port.String())
		return NewOutput(port.String(), send), nil
	}
	return nil, fmt.Errorf("%w: output %q", ErrPortNotFound, name)
}

// Name returns the port name
func (o *Output) Name() string {
	return o.name
}

func (o *Output) NoteOn(channel, pitch, velocity uint8) error {
	if channel < 1 || channel > 16 {
		return fmt.Errorf("%w: %d", ErrBadChannel, channel)
	}
	return o.write(gomidi.NoteOn(channel-1, pitch, velocity))
}

func (o *Output) NoteOff(channel, pitch uint8) error {
	if channel < 1 || channel > 16 {
		return fmt.Errorf("%w: %d", ErrBadChannel, channel)
	}
	return o.write(gomidi.NoteOff(channel-1, pitch))
}

// Panic sends all-notes-off on every channel
func (o *Output) Panic() error {
	var errs []error
	for ch := uint8(0); ch < 16; ch++ {
		if err := o.write(gomidi.ControlChange(ch, allNotesOff, 0)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o *Output) write(msg gomidi.Message) error {
	if o.send == nil {
		return nil
	}
	if err := o.send(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg, err)
	}
	return nil
}
