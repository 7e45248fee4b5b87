package sequencer

import (
	"go-genseq/debug"
	"go-genseq/pattern"
)

// Sink receives outgoing note messages. Channels are 1-16.
type Sink interface {
	NoteOn(channel, pitch, velocity uint8) error
	NoteOff(channel, pitch uint8) error
}

type soundKey struct {
	role    pattern.Role
	channel uint8
	pitch   uint8
}

type noteMsg struct {
	key      soundKey
	velocity uint8
}

// Player turns global step ticks into note messages for a set of tracks.
// It is driven by a single goroutine.
type Player struct {
	tracks   []*Track
	sink     Sink
	sounding map[soundKey]struct{}
	playing  map[pattern.Role]*pattern.Pattern
}

// NewPlayer creates a player for tracks sending to sink
func NewPlayer(tracks []*Track, sink Sink) *Player {
	return &Player{
		tracks:   tracks,
		sink:     sink,
		sounding: make(map[soundKey]struct{}),
		playing:  make(map[pattern.Role]*pattern.Pattern),
	}
}

// Step plays one global step. Every track folds the step into its own
// length, so tracks of different lengths drift against each other. All
// note-offs of the step are sent before any note-on so a retriggered
// pitch is never cut by its own release. Offs are only sent for notes
// that are actually sounding.
func (p *Player) Step(global int) {
	var offs, ons []noteMsg
	for _, t := range p.tracks {
		pat := t.Pattern()
		if pat != p.playing[t.Role] {
			offs = append(offs, p.release(t.Role)...)
			p.playing[t.Role] = pat
		}
		if pat == nil {
			continue
		}
		local := pat.LocalStep(global)
		muted := t.Muted()
		for _, n := range pat.Notes {
			key := soundKey{role: t.Role, channel: t.ChannelFor(n), pitch: n.Pitch}
			if pat.NormalizeEnd(n) == local {
				offs = append(offs, noteMsg{key: key})
			}
			if n.Start == local && !muted {
				ons = append(ons, noteMsg{key: key, velocity: n.Velocity})
			}
		}
	}

	for _, m := range offs {
		if _, ok := p.sounding[m.key]; ok {
			p.noteOff(m.key)
		}
	}
	for _, m := range ons {
		// retrigger: close the held note so every on has its own off
		if _, ok := p.sounding[m.key]; ok {
			p.noteOff(m.key)
		}
		if err := p.sink.NoteOn(m.key.channel, m.key.pitch, m.velocity); err != nil {
			debug.Log("midi", "note on ch=%d note=%d: %v", m.key.channel, m.key.pitch, err)
			continue
		}
		p.sounding[m.key] = struct{}{}
	}
	debug.LogEvery(16, "step", "global=%d offs=%d ons=%d sounding=%d", global, len(offs), len(ons), len(p.sounding))
}

// release collects the sounding notes of a track whose pattern was replaced
func (p *Player) release(role pattern.Role) []noteMsg {
	var out []noteMsg
	for k := range p.sounding {
		if k.role == role {
			out = append(out, noteMsg{key: k})
		}
	}
	return out
}

func (p *Player) noteOff(k soundKey) {
	delete(p.sounding, k)
	if err := p.sink.NoteOff(k.channel, k.pitch); err != nil {
		debug.Log("midi", "note off ch=%d note=%d: %v", k.channel, k.pitch, err)
	}
}

// Flush releases every sounding note
func (p *Player) Flush() {
	if len(p.sounding) == 0 {
		return
	}
	debug.Log("transport", "flushing %d sounding notes", len(p.sounding))
	for k := range p.sounding {
		p.noteOff(k)
	}
}

// Sounding returns the number of notes currently held
func (p *Player) Sounding() int {
	return len(p.sounding)
}
