package midi

import (
	"go-genseq/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// System realtime status bytes
const (
	TimingClock uint8 = 0xF8
	Start       uint8 = 0xFA
	Continue    uint8 = 0xFB
	Stop        uint8 = 0xFC
)

// Transport receives the clock and transport messages of an external
// MIDI clock source
type Transport interface {
	Start()
	Stop()
	Continue()
	Tick()
}

// Dispatch forwards a realtime message to t. Anything else is ignored and
// logged; the return value reports whether the message was handled.
func Dispatch(msg gomidi.Message, t Transport) bool {
	if len(msg) == 0 {
		return false
	}
	switch msg[0] {
	case TimingClock:
		t.Tick()
	case Start:
		t.Start()
	case Stop:
		t.Stop()
	case Continue:
		t.Continue()
	default:
		debug.LogEvery(32, "midi-in", "ignored %s", msg)
		return false
	}
	return true
}
