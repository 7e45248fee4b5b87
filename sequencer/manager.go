package sequencer

import (
	"sync"

	"go-genseq/debug"
	"go-genseq/generate"
	"go-genseq/pattern"
)

// Manager ties the clock, the player and the generation state together.
// Transport calls arrive from the MIDI input goroutine, control calls from
// the TUI; a mutex serializes them.
type Manager struct {
	mu     sync.Mutex
	clock  Clock
	player *Player
	state  *State

	// FlushOnStop releases sounding notes when the clock stops
	FlushOnStop bool

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// NewManager creates a manager playing state's tracks into sink
func NewManager(state *State, sink Sink) *Manager {
	return &Manager{
		player:      NewPlayer(state.Tracks(), sink),
		state:       state,
		FlushOnStop: true,
		UpdateChan:  make(chan struct{}, 1),
	}
}

// State returns the generation state
func (m *Manager) State() *State {
	return m.state
}

// Start handles a MIDI Start message
func (m *Manager) Start() {
	m.mu.Lock()
	m.player.Flush()
	m.clock.Start()
	m.mu.Unlock()
	debug.Log("transport", "start, cycle=%d", m.state.Cycle())
	m.notifyUpdate()
}

// Stop handles a MIDI Stop message
func (m *Manager) Stop() {
	m.mu.Lock()
	m.clock.Stop()
	if m.FlushOnStop {
		m.player.Flush()
	}
	m.mu.Unlock()
	debug.Log("transport", "stop")
	m.notifyUpdate()
}

// Continue handles a MIDI Continue message
func (m *Manager) Continue() {
	m.mu.Lock()
	m.clock.Continue()
	step := m.clock.Step()
	m.mu.Unlock()
	debug.Log("transport", "continue at step %d", step)
	m.notifyUpdate()
}

// Tick handles a MIDI timing clock pulse
func (m *Manager) Tick() {
	m.mu.Lock()
	step, ok := m.clock.Pulse(m.state.Cycle())
	if ok {
		m.player.Step(step)
	}
	m.mu.Unlock()
	if ok {
		m.notifyUpdate()
	}
}

// Panic releases every sounding note
func (m *Manager) Panic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.player.Flush()
}

// Regenerate regenerates one role and notifies listeners
func (m *Manager) Regenerate(r pattern.Role) bool {
	ok := m.state.Regenerate(r)
	m.notifyUpdate()
	return ok
}

// RegenerateAll regenerates every unlocked track
func (m *Manager) RegenerateAll() {
	m.state.RegenerateAll()
	m.notifyUpdate()
}

// SetSong updates the song and regenerates unlocked tracks
func (m *Manager) SetSong(song generate.Song) {
	m.state.SetSong(song)
	m.RegenerateAll()
}

// SetKit switches the drum kit of drums and bass and regenerates both,
// leaving locked tracks as they are
func (m *Manager) SetKit(name string) {
	if dp, ok := m.state.Params(pattern.Drums).(generate.DrumParams); ok {
		dp.Kit = name
		m.state.SetParams(dp)
	}
	if bp, ok := m.state.Params(pattern.Bass).(generate.BassParams); ok {
		bp.Kit = name
		m.state.SetParams(bp)
	}
	m.state.Regenerate(pattern.Drums)
	m.state.Regenerate(pattern.Bass)
	m.notifyUpdate()
}

// Kit returns the drum kit in use
func (m *Manager) Kit() string {
	if dp, ok := m.state.Params(pattern.Drums).(generate.DrumParams); ok && dp.Kit != "" {
		return dp.Kit
	}
	return generate.DefaultKit
}

// ToggleMute flips a track's mute flag
func (m *Manager) ToggleMute(r pattern.Role) bool {
	v := m.state.Track(r).ToggleMute()
	m.notifyUpdate()
	return v
}

// ToggleLock flips a track's lock flag
func (m *Manager) ToggleLock(r pattern.Role) bool {
	v := m.state.Track(r).ToggleLock()
	m.notifyUpdate()
	return v
}

// TrackStatus is a snapshot of one track for display
type TrackStatus struct {
	Role    pattern.Role
	Channel uint8
	Length  int
	Notes   int
	Local   int // current local step, 0 when not playing
	Muted   bool
	Locked  bool
}

// Status is a snapshot of the transport and tracks
type Status struct {
	Running  bool
	Step     int
	Cycle    int
	Sounding int
	Song     generate.Song
	Tracks   []TrackStatus
}

// Status returns the current state for display
func (m *Manager) Status() Status {
	m.mu.Lock()
	st := Status{
		Running:  m.clock.Running(),
		Step:     m.clock.Step(),
		Sounding: m.player.Sounding(),
	}
	m.mu.Unlock()

	st.Cycle = m.state.Cycle()
	st.Song = m.state.Song()
	for _, t := range m.state.Tracks() {
		ts := TrackStatus{
			Role:    t.Role,
			Channel: t.Channel,
			Muted:   t.Muted(),
			Locked:  t.Locked(),
		}
		if ts.Channel == 0 {
			ts.Channel = t.Default
		}
		if p := t.Pattern(); p != nil {
			ts.Length = p.Length
			ts.Notes = len(p.Notes)
			if st.Step > 0 {
				ts.Local = p.LocalStep(st.Step)
			}
		}
		st.Tracks = append(st.Tracks, ts)
	}
	return st
}

// notifyUpdate wakes the TUI without blocking
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}
