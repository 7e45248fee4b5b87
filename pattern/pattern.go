package pattern

import (
	"errors"
	"fmt"
	"sort"
)

var ErrDegenerateNote = errors.New("degenerate note")

// Tag is a note's structural role, used for channel routing
type Tag int

const (
	TagNone Tag = iota
	TagMain
	TagExtension
	TagDrone
	TagResponse
)

func (t Tag) String() string {
	switch t {
	case TagMain:
		return "main"
	case TagExtension:
		return "extension"
	case TagDrone:
		return "drone"
	case TagResponse:
		return "response"
	default:
		return "none"
	}
}

// Note is a timed event on the step grid. Start is 1-based and inclusive,
// End is exclusive and may point one past the pattern length.
type Note struct {
	Pitch    uint8
	Velocity uint8
	Start    int
	End      int
	Channel  uint8 // 0 = route by tag/track, 1-16 = explicit
	Tag      Tag
}

// Pattern is one loop of notes for a track
type Pattern struct {
	Notes  []Note
	Length int // steps per loop, >= 1
}

// New creates an empty pattern with the given loop length
func New(length int) *Pattern {
	if length < 1 {
		length = 1
	}
	return &Pattern{Length: length}
}

// Add validates and appends a note. Pitch and velocity are clamped to the
// MIDI range; zero-length or inverted notes are rejected.
func (p *Pattern) Add(n Note) error {
	if n.End <= n.Start {
		return fmt.Errorf("%w: start=%d end=%d", ErrDegenerateNote, n.Start, n.End)
	}
	if n.Pitch > 127 {
		n.Pitch = 127
	}
	n.Velocity = ClampVelocity(int(n.Velocity))
	if n.Channel > 16 {
		n.Channel = 16
	}
	p.Notes = append(p.Notes, n)
	return nil
}

// Clone returns a deep copy
func (p *Pattern) Clone() *Pattern {
	c := &Pattern{Length: p.Length, Notes: make([]Note, len(p.Notes))}
	copy(c.Notes, p.Notes)
	return c
}

// Sort orders notes by start step, then pitch
func (p *Pattern) Sort() {
	sort.SliceStable(p.Notes, func(i, j int) bool {
		if p.Notes[i].Start != p.Notes[j].Start {
			return p.Notes[i].Start < p.Notes[j].Start
		}
		return p.Notes[i].Pitch < p.Notes[j].Pitch
	})
}

// LocalStep folds a 1-based global step into this pattern's own loop
func (p *Pattern) LocalStep(global int) int {
	return Wrap(global, p.Length)
}

// NormalizeEnd wraps a note's end into [1, Length]. A note ending exactly
// at Length+1 is released on step 1 of the next loop.
func (p *Pattern) NormalizeEnd(n Note) int {
	return Wrap(n.End, p.Length)
}

// ActiveAt returns the notes sounding at a 1-based local step
func (p *Pattern) ActiveAt(step int) []Note {
	var out []Note
	for _, n := range p.Notes {
		if step >= n.Start && step < n.End {
			out = append(out, n)
		}
	}
	return out
}

// Wrap maps any 1-based step onto 1..length
func Wrap(step, length int) int {
	if length < 1 {
		return step
	}
	return ((step-1)%length+length)%length + 1
}

// ClampVelocity limits a velocity to 1..127
func ClampVelocity(v int) uint8 {
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}
