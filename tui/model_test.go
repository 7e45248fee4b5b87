package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go-genseq/generate"
	"go-genseq/pattern"
	"go-genseq/sequencer"
	"go-genseq/theme"
	"go-genseq/theory"
)

type discard struct{}

func (discard) NoteOn(ch, pitch, vel uint8) error { return nil }
func (discard) NoteOff(ch, pitch uint8) error     { return nil }

func newTestModel() Model {
	state := sequencer.NewState(generate.New(generate.NewRand(1)))
	state.RegenerateAll()
	return NewModel(sequencer.NewManager(state, discard{}), nil, nil)
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	if key == "enter" {
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestTrackKeys(t *testing.T) {
	m := newTestModel()
	state := m.Manager.State()

	m = press(t, m, "m")
	if !state.Track(pattern.Drums).Muted() {
		t.Fatal("m should mute the selected drums track")
	}

	m = press(t, m, "2")
	if m.Selected() != pattern.Bass {
		t.Fatalf("selected %s, want bass", m.Selected())
	}
	m = press(t, m, "l")
	if !state.Track(pattern.Bass).Locked() {
		t.Fatal("l should lock bass")
	}

	before := state.Pattern(pattern.Bass)
	m = press(t, m, "enter")
	if state.Pattern(pattern.Bass) != before {
		t.Error("locked track was regenerated")
	}
	if m.Status() != "bass is locked" {
		t.Errorf("status %q", m.Status())
	}

	m = press(t, m, "4")
	before = state.Pattern(pattern.Melody)
	m = press(t, m, "g")
	if state.Pattern(pattern.Melody) == before {
		t.Error("melody pattern not replaced")
	}
}

func TestSongKeys(t *testing.T) {
	m := newTestModel()
	m = press(t, m, "G")
	m = press(t, m, "k")
	m = press(t, m, "s")
	want := generate.Song{Genre: generate.GenreSynthwave, Key: "C#", Scale: theory.ScaleMinor}
	if got := m.Manager.State().Song(); got != want {
		t.Errorf("song %+v, want %+v", got, want)
	}
}

func TestKitKey(t *testing.T) {
	m := newTestModel()
	before := m.Manager.State().Pattern(pattern.Drums)
	m = press(t, m, "d")
	if got := m.Manager.Kit(); got != "gm" {
		t.Fatalf("kit %q, want gm", got)
	}
	bp := m.Manager.State().Params(pattern.Bass).(generate.BassParams)
	if bp.Kit != "gm" {
		t.Errorf("bass follows kit %q", bp.Kit)
	}
	if m.Manager.State().Pattern(pattern.Drums) == before {
		t.Error("drums not regenerated with the new kit")
	}
	if !strings.Contains(m.View(), "kit:gm") {
		t.Error("view does not show the kit")
	}
	m = press(t, m, "d")
	if got := m.Manager.Kit(); got != "opxy" {
		t.Errorf("kit should wrap to opxy, got %q", got)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if v := next.View(); v != "" {
		t.Errorf("view after quit: %q", v)
	}
}

func TestView(t *testing.T) {
	v := newTestModel().View()
	for _, s := range []string{"go-genseq", "STOP", "drums", "bass", "chords", "melody", "edm"} {
		if !strings.Contains(v, s) {
			t.Errorf("view missing %q", s)
		}
	}
}

func TestPlayheadBar(t *testing.T) {
	sym := theme.New(nil).Symbols
	cases := []struct {
		length, local int
		want          string
	}{
		{4, 0, "····"},
		{4, 2, "━▶··"},
		{4, 4, "━━━▶"},
	}
	for _, c := range cases {
		if got := playheadBar(sym, c.length, c.local); got != c.want {
			t.Errorf("playheadBar(%d, %d) = %q, want %q", c.length, c.local, got, c.want)
		}
	}

	long := []rune(playheadBar(sym, 128, 128))
	if len(long) != maxBarWidth || long[maxBarWidth-1] != sym.StepPlayhead {
		t.Errorf("scaled bar %q", string(long))
	}
}

func TestNextWraps(t *testing.T) {
	keys := theory.KeyNames()
	if got := next(keys, "B"); got != "C" {
		t.Errorf("next after B = %q", got)
	}
	if got := next(keys, "H"); got != "C" {
		t.Errorf("unknown key should restart at C, got %q", got)
	}
}
