package sequencer

import (
	"sync/atomic"

	"go-genseq/pattern"
)

// Default MIDI channels per role and per note tag
const (
	DrumsChannel     uint8 = 1
	BassChannel      uint8 = 3
	MelodyChannel    uint8 = 4
	ResponseChannel  uint8 = 5
	ExtensionChannel uint8 = 6
	ChordsChannel    uint8 = 7
	DroneChannel     uint8 = 8
)

// Track is one generated part routed to a MIDI channel. The pattern is
// swapped atomically so playback never sees a half-built pattern.
type Track struct {
	Role        pattern.Role
	Channel     uint8                 // configured send channel (1-16), 0 = unset
	Default     uint8                 // fallback channel for the role
	TagChannels map[pattern.Tag]uint8 // per-tag overrides, e.g. drones

	pat    atomic.Pointer[pattern.Pattern]
	muted  atomic.Bool
	locked atomic.Bool
}

// NewTrack creates a track with the role's default routing
func NewTrack(role pattern.Role) *Track {
	t := &Track{Role: role, TagChannels: map[pattern.Tag]uint8{}}
	switch role {
	case pattern.Drums:
		t.Default = DrumsChannel
	case pattern.Bass:
		t.Default = BassChannel
	case pattern.Chords:
		t.Default = ChordsChannel
		t.TagChannels[pattern.TagExtension] = ExtensionChannel
		t.TagChannels[pattern.TagDrone] = DroneChannel
	case pattern.Melody:
		t.Default = MelodyChannel
		t.TagChannels[pattern.TagResponse] = ResponseChannel
	}
	return t
}

// Pattern returns the current pattern, nil if none was generated yet
func (t *Track) Pattern() *pattern.Pattern {
	return t.pat.Load()
}

// SetPattern publishes a new pattern
func (t *Track) SetPattern(p *pattern.Pattern) {
	t.pat.Store(p)
}

func (t *Track) Muted() bool      { return t.muted.Load() }
func (t *Track) SetMuted(v bool)  { t.muted.Store(v) }
func (t *Track) Locked() bool     { return t.locked.Load() }
func (t *Track) SetLocked(v bool) { t.locked.Store(v) }

// ToggleMute flips the mute flag and returns the new value
func (t *Track) ToggleMute() bool {
	v := !t.muted.Load()
	t.muted.Store(v)
	return v
}

// ToggleLock flips the lock flag and returns the new value
func (t *Track) ToggleLock() bool {
	v := !t.locked.Load()
	t.locked.Store(v)
	return v
}

// ChannelFor resolves a note's output channel: the note's own channel,
// then the tag channel, then the track send channel, then the default.
func (t *Track) ChannelFor(n pattern.Note) uint8 {
	if n.Channel != 0 {
		return n.Channel
	}
	if ch := t.TagChannels[n.Tag]; ch != 0 {
		return ch
	}
	if t.Channel != 0 {
		return t.Channel
	}
	return t.Default
}

// Length returns the pattern length, 0 when the track is empty
func (t *Track) Length() int {
	if p := t.Pattern(); p != nil {
		return p.Length
	}
	return 0
}
