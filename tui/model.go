package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-genseq/generate"
	"go-genseq/midi"
	"go-genseq/pattern"
	"go-genseq/sequencer"
	"go-genseq/theme"
	"go-genseq/theory"
)

// Widest playhead bar drawn per track
const maxBarWidth = 64

type Model struct {
	Manager   *sequencer.Manager
	DeviceMgr *midi.DeviceManager // may be nil
	Theme     *theme.Theme
	selected  pattern.Role
	status    string
	quitting  bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(manager *sequencer.Manager, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	if th == nil {
		th = theme.New(nil)
	}
	return Model{
		Manager:   manager,
		DeviceMgr: deviceMgr,
		Theme:     th,
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event := <-deviceMgr.Events()
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	if m.DeviceMgr == nil {
		return ListenForUpdates(m.Manager)
	}
	return tea.Batch(
		ListenForUpdates(m.Manager),
		ListenForDevices(m.DeviceMgr),
	)
}

// Selected returns the track the per-track keys act on
func (m Model) Selected() pattern.Role { return m.selected }

// Status returns the last status line message
func (m Model) Status() string { return m.status }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Manager.Panic()
			return m, tea.Quit

		case "1", "2", "3", "4":
			m.selected = pattern.Role(msg.String()[0] - '1')

		case "r":
			m.Manager.RegenerateAll()
			m.status = "regenerated unlocked tracks"

		case "enter", "g":
			if m.Manager.Regenerate(m.selected) {
				m.status = fmt.Sprintf("regenerated %s", m.selected)
			} else {
				m.status = fmt.Sprintf("%s is locked", m.selected)
			}

		case "m":
			if m.Manager.ToggleMute(m.selected) {
				m.status = fmt.Sprintf("%s muted", m.selected)
			} else {
				m.status = fmt.Sprintf("%s unmuted", m.selected)
			}

		case "l":
			if m.Manager.ToggleLock(m.selected) {
				m.status = fmt.Sprintf("%s locked", m.selected)
			} else {
				m.status = fmt.Sprintf("%s unlocked", m.selected)
			}

		case "G":
			song := m.Manager.State().Song()
			song.Genre = next(generate.GenreNames(), song.Genre)
			m.setSong(song)

		case "k":
			song := m.Manager.State().Song()
			song.Key = next(theory.KeyNames(), song.Key)
			m.setSong(song)

		case "s":
			song := m.Manager.State().Song()
			song.Scale = next(theory.ScaleNames(), song.Scale)
			m.setSong(song)

		case "d":
			kit := next(generate.KitNames(), m.Manager.Kit())
			m.Manager.SetKit(kit)
			m.status = fmt.Sprintf("drum kit %s", kit)

		case "!":
			m.Manager.Panic()
			m.status = "all notes off"
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		m.status = fmt.Sprintf("clock %s %s", event.ID, event.Type)
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m *Model) setSong(song generate.Song) {
	m.Manager.SetSong(song)
	m.status = fmt.Sprintf("%s in %s %s", song.Genre, song.Key, song.Scale)
}

// next returns the element after cur, wrapping; the first element if cur is
// not in the list
func next[T comparable](list []T, cur T) T {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Manager.Status()

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	playState := "STOP"
	if st.Running {
		playState = "PLAY"
	}

	clockStatus := "clock:-"
	if m.DeviceMgr != nil {
		if name := m.DeviceMgr.Connected(); name != "" {
			clockStatus = "clock:" + name
		}
	}

	header := headerStyle.Render(fmt.Sprintf("go-genseq  %s  step:%03d/%03d  %s", playState, st.Step, st.Cycle, clockStatus))
	song := fgStyle.Render(fmt.Sprintf("%s  %s %s  kit:%s  sounding:%d", st.Song.Genre, st.Song.Key, st.Song.Scale, m.Manager.Kit(), st.Sounding))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(song)
	out.WriteString("\n\n")
	for _, ts := range st.Tracks {
		out.WriteString(m.trackRow(ts))
		out.WriteString("\n")
	}

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(warnStyle.Render(m.status))
	}

	help := dimStyle.Render("1-4:track  g:regen  r:regen all  m:mute  l:lock  G/k/s:genre/key/scale  d:kit  !:panic  q:quit")
	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}

func (m Model) trackRow(ts sequencer.TrackStatus) string {
	sym := m.Theme.Symbols
	color := m.Theme.Track(ts.Role)
	if ts.Muted {
		color = m.Theme.Muted()
	}
	nameStyle := lipgloss.NewStyle().Foreground(color)
	if ts.Role == m.selected {
		nameStyle = nameStyle.Bold(true).Underline(true)
	}

	flags := []rune{' ', ' '}
	if ts.Muted {
		flags[0] = sym.Muted
	}
	if ts.Locked {
		flags[1] = sym.Locked
	}

	label := fmt.Sprintf("%d %-6s", int(ts.Role)+1, ts.Role)
	info := fmt.Sprintf("ch%-2d len%-3d notes%-3d %s", ts.Channel, ts.Length, ts.Notes, string(flags))
	return nameStyle.Render(label) + "  " + info + "  " + lipgloss.NewStyle().Foreground(color).Render(playheadBar(sym, ts.Length, ts.Local))
}

// playheadBar draws one cell per step up to maxBarWidth; local is the
// 1-based step playing, 0 when stopped
func playheadBar(sym theme.Symbols, length, local int) string {
	width := length
	if width > maxBarWidth {
		width = maxBarWidth
	}
	pos := local
	if length > maxBarWidth && local > 0 {
		pos = (local-1)*maxBarWidth/length + 1
	}

	var b strings.Builder
	for i := 1; i <= width; i++ {
		switch {
		case i == pos:
			b.WriteRune(sym.StepPlayhead)
		case i < pos:
			b.WriteRune(sym.StepPassed)
		default:
			b.WriteRune(sym.StepEmpty)
		}
	}
	return b.String()
}
