package midi

import (
	"errors"
	"reflect"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type fakeTransport struct {
	calls []string
}

func (f *fakeTransport) Start()    { f.calls = append(f.calls, "start") }
func (f *fakeTransport) Stop()     { f.calls = append(f.calls, "stop") }
func (f *fakeTransport) Continue() { f.calls = append(f.calls, "continue") }
func (f *fakeTransport) Tick()     { f.calls = append(f.calls, "tick") }

func TestDispatch(t *testing.T) {
	ft := &fakeTransport{}
	msgs := []gomidi.Message{
		{0xFA},
		{0xF8},
		{0xF8},
		gomidi.NoteOn(0, 60, 100),
		{0xFC},
		{0xFB},
		{},
	}
	handled := 0
	for _, m := range msgs {
		if Dispatch(m, ft) {
			handled++
		}
	}
	want := []string{"start", "tick", "tick", "stop", "continue"}
	if !reflect.DeepEqual(ft.calls, want) {
		t.Fatalf("got %v, want %v", ft.calls, want)
	}
	if handled != len(want) {
		t.Errorf("handled %d messages, want %d", handled, len(want))
	}
}

func TestOutputChannels(t *testing.T) {
	var sent []gomidi.Message
	out := NewOutput("test", func(m gomidi.Message) error {
		sent = append(sent, m)
		return nil
	})
	if out.Name() != "test" {
		t.Errorf("name %q", out.Name())
	}
	if err := out.NoteOn(1, 60, 100); err != nil {
		t.Fatal(err)
	}
	if err := out.NoteOff(16, 61); err != nil {
		t.Fatal(err)
	}
	if err := out.NoteOn(0, 60, 100); !errors.Is(err, ErrBadChannel) {
		t.Fatalf("expected ErrBadChannel for channel 0, got %v", err)
	}
	if err := out.NoteOff(17, 60); !errors.Is(err, ErrBadChannel) {
		t.Fatalf("expected ErrBadChannel for channel 17, got %v", err)
	}
	want := []gomidi.Message{gomidi.NoteOn(0, 60, 100), gomidi.NoteOff(15, 61)}
	if !reflect.DeepEqual(sent, want) {
		t.Fatalf("sent %v, want %v", sent, want)
	}
}

func TestOutputPanic(t *testing.T) {
	var sent []gomidi.Message
	out := NewOutput("test", func(m gomidi.Message) error {
		sent = append(sent, m)
		return nil
	})
	if err := out.Panic(); err != nil {
		t.Fatal(err)
	}
	if len(sent) != 16 {
		t.Fatalf("expected 16 messages, got %d", len(sent))
	}
	for i, m := range sent {
		var ch, cc, val uint8
		if !m.GetControlChange(&ch, &cc, &val) || ch != uint8(i) || cc != allNotesOff {
			t.Errorf("message %d is %s", i, m)
		}
	}
}

func TestOutputSendError(t *testing.T) {
	boom := errors.New("boom")
	out := NewOutput("test", func(gomidi.Message) error { return boom })
	if err := out.NoteOn(1, 60, 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
	if err := NewOutput("null", nil).NoteOn(1, 60, 1); err != nil {
		t.Fatalf("nil sender should drop silently, got %v", err)
	}
}

func TestMatchPort(t *testing.T) {
	cases := []struct {
		name, want string
		ok         bool
	}{
		{"OP-XY MIDI 1", "op-xy", true},
		{"IAC Driver Bus 1", " iac driver ", true},
		{"Launchpad X LPX MIDI", "op-xy", false},
		{"anything", "", true},
	}
	for _, c := range cases {
		if got := matchPort(c.name, c.want); got != c.ok {
			t.Errorf("matchPort(%q, %q) = %v", c.name, c.want, got)
		}
	}
}
