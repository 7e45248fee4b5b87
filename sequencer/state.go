package sequencer

import (
	"sync"

	"go-genseq/debug"
	"go-genseq/generate"
	"go-genseq/pattern"
)

// State holds everything generation depends on: the song, per-track
// parameters and the tracks with their current patterns. Generation is
// serialized by a mutex; playback only reads the tracks' atomic patterns.
type State struct {
	mu     sync.Mutex
	song   generate.Song
	params [pattern.NumRoles]generate.Params
	tracks [pattern.NumRoles]*Track
	gen    *generate.Generator
}

// NewState creates a state with default song and parameters and no patterns
func NewState(gen *generate.Generator) *State {
	if gen == nil {
		gen = generate.New(nil)
	}
	s := &State{song: generate.DefaultSong(), gen: gen}
	for _, r := range pattern.Roles() {
		s.tracks[r] = NewTrack(r)
		s.params[r] = generate.DefaultParams(r)
	}
	return s
}

func (s *State) Song() generate.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.song
}

// SetSong changes genre, key and scale. Patterns are kept until the next
// regeneration.
func (s *State) SetSong(song generate.Song) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.song = song
}

// Params returns a role's parameter set
func (s *State) Params(r pattern.Role) generate.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params[r]
}

// SetParams stores a parameter set under its own role
func (s *State) SetParams(p generate.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params[p.Role()] = p
}

// Track returns the track for a role
func (s *State) Track(r pattern.Role) *Track {
	return s.tracks[r]
}

// Tracks returns all tracks in generation order
func (s *State) Tracks() []*Track {
	return s.tracks[:]
}

func (s *State) Pattern(r pattern.Role) *pattern.Pattern {
	return s.tracks[r].Pattern()
}

// Regenerate builds a new pattern for one role and publishes it. Locked
// tracks are left untouched and false is returned.
func (s *State) Regenerate(r pattern.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerate(r)
}

// RegenerateAll regenerates every unlocked track. Drums go first so bass
// can follow the kicks, chords before melody so the melody can follow
// the harmony.
func (s *State) RegenerateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range pattern.Roles() {
		s.regenerate(r)
	}
}

func (s *State) regenerate(r pattern.Role) bool {
	t := s.tracks[r]
	if t.Locked() {
		debug.Log("gen", "%s locked, skipping", r)
		return false
	}
	params := s.params[r]
	switch p := params.(type) {
	case generate.BassParams:
		p.Drums = s.tracks[pattern.Drums].Pattern()
		if p.Kit == "" {
			if dp, ok := s.params[pattern.Drums].(generate.DrumParams); ok {
				p.Kit = dp.Kit
			}
		}
		params = p
	case generate.MelodyParams:
		p.Chords = s.tracks[pattern.Chords].Pattern()
		params = p
	}
	pat := s.gen.Generate(s.song, params)
	t.SetPattern(pat)
	debug.Log("gen", "%s: %d notes over %d steps (%s %s %s)", r, len(pat.Notes), pat.Length, s.song.Genre, s.song.Key, s.song.Scale)
	return true
}

// Lengths returns the lengths of all tracks that have a pattern
func (s *State) Lengths() []int {
	var out []int
	for _, t := range s.tracks {
		if l := t.Length(); l > 0 {
			out = append(out, l)
		}
	}
	return out
}

// Cycle is the number of steps after which every track is back at its
// first step: the LCM of all track lengths, DefaultCycle when empty.
func (s *State) Cycle() int {
	if c := pattern.LCM(s.Lengths()...); c > 0 {
		return c
	}
	return DefaultCycle
}
