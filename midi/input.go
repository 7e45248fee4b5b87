package midi

import (
	"fmt"

	"go-genseq/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ClockInput listens to an input port and forwards its clock and transport
// messages
type ClockInput struct {
	id       string
	inPort   drivers.In
	stopFunc func()
}

// NewClockInput starts listening on inPort. Timing clock is filtered by
// the driver unless explicitly requested, hence UseTimeCode.
func NewClockInput(id string, inPort drivers.In, t Transport) (*ClockInput, error) {
	ci := &ClockInput{id: id, inPort: inPort}
	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		Dispatch(msg, t)
	}, gomidi.UseTimeCode(), gomidi.HandleError(func(err error) {
		debug.Log("midi-in", "%s: %v", id, err)
	}))
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	ci.stopFunc = stop
	debug.Log("midi-in", "listening on %s", id)
	return ci, nil
}

func (ci *ClockInput) ID() string {
	return ci.id
}

func (ci *ClockInput) Close() error {
	if ci.stopFunc != nil {
		ci.stopFunc()
		ci.stopFunc = nil
	}
	return nil
}
