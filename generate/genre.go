package generate

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownGenre = errors.New("unknown genre")

// Genre selects the template family used by every generator
type Genre string

const (
	GenreEDM          Genre = "edm"
	GenreSynthwave    Genre = "synthwave"
	GenreHipHop       Genre = "hiphop"
	GenreAmbient      Genre = "ambient"
	GenreHouse        Genre = "house"
	GenreExperimental Genre = "experimental"
)

// DefaultGenre is used whenever a genre cannot be resolved
const DefaultGenre = GenreEDM

// GenreNames returns all genres in display order
func GenreNames() []Genre {
	return []Genre{GenreEDM, GenreSynthwave, GenreHipHop, GenreAmbient, GenreHouse, GenreExperimental}
}

// ParseGenre resolves a genre by name. Unknown names yield DefaultGenre
// together with ErrUnknownGenre.
func ParseGenre(name string) (Genre, error) {
	g := Genre(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := templates[g]; !ok {
		return DefaultGenre, fmt.Errorf("%w: %q", ErrUnknownGenre, name)
	}
	return g, nil
}

// VoiceTemplate is one drum voice's 16-step base pattern
type VoiceTemplate struct {
	Voice       Voice
	Steps       []int // 1-based, within a 16-step block
	Probability float64
}

// GenreTemplate is the static, read-only configuration of a genre
type GenreTemplate struct {
	Core      []VoiceTemplate
	Auxiliary []VoiceTemplate

	BassMotifs     [][]bool // 8-step on/off motifs
	BassNoteLength int      // steps

	Progressions  [][]int  // scale degrees
	ChordRhythms  [][]bool // 8-step hit patterns
	MelodyFlavour []int    // semitones from key
}

func motif(bits ...int) []bool {
	out := make([]bool, len(bits))
	for i, b := range bits {
		out[i] = b != 0
	}
	return out
}

var everyStep = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

var templates = map[Genre]*GenreTemplate{
	GenreEDM: {
		Core: []VoiceTemplate{
			{Kick, []int{1, 5, 9, 13}, 0.9},
			{Snare, []int{5, 13}, 0.9},
			{ClosedHat, []int{1, 3, 5, 7, 9, 11, 13, 15}, 0.8},
		},
		Auxiliary: []VoiceTemplate{
			{Crash, []int{1}, 0.3},
			{Ride, []int{3, 7, 11, 15}, 0.1},
			{Clap, []int{5, 13}, 0.2},
		},
		BassMotifs: [][]bool{
			motif(1, 0, 0, 0, 1, 0, 0, 0), // four-on-the-floor
			motif(1, 0, 1, 0, 0, 1, 0, 0), // syncopated
			motif(1, 0, 0, 1, 0, 0, 1, 0), // rolling
		},
		BassNoteLength: 6,
		Progressions:   [][]int{{0, 5, 3, 4}, {0, 4, 5, 3}, {0, 2, 4, 5}, {0, 3, 4, 5}, {0, 5, 4, 3}},
		ChordRhythms: [][]bool{
			motif(1, 0, 0, 0, 1, 0, 0, 0),
			motif(1, 0, 1, 0, 1, 0, 1, 0),
			motif(1, 1, 0, 1, 0, 1, 0, 1),
			motif(1, 0, 1, 1, 0, 1, 0, 1),
		},
		MelodyFlavour: []int{0, 2, 4, 5, 7, 9, 11},
	},
	GenreSynthwave: {
		Core: []VoiceTemplate{
			{Kick, []int{1, 9}, 0.8},
			{Snare, []int{5, 13}, 0.8},
			{ClosedHat, []int{1, 5, 9, 13}, 0.7},
		},
		Auxiliary: []VoiceTemplate{
			{Rim, []int{3, 7, 11, 15}, 0.6},
			{Crash, []int{1}, 0.4},
			{MidTom, []int{14, 15, 16}, 0.2},
		},
		BassMotifs: [][]bool{
			motif(1, 0, 0, 1, 1, 0, 0, 0),
			motif(1, 1, 0, 0, 1, 0, 1, 0),
			motif(1, 0, 1, 0, 1, 0, 1, 0),
		},
		BassNoteLength: 12,
		Progressions:   [][]int{{0, 5, 2, 3}, {0, 4, 2, 5}, {0, 3, 2, 4}, {0, 2, 3, 5}},
		ChordRhythms: [][]bool{
			motif(1, 0, 0, 1, 0, 0, 1, 0),
			motif(1, 1, 0, 1, 1, 0, 1, 0),
			motif(1, 0, 1, 0, 1, 1, 0, 1),
		},
		MelodyFlavour: []int{0, 2, 4, 5, 7, 9, 10},
	},
	GenreHipHop: {
		Core: []VoiceTemplate{
			{Kick, []int{1, 7, 9, 15}, 0.8},
			{Snare, []int{5, 13}, 0.9},
			{ClosedHat, []int{1, 3, 5, 7, 9, 11, 13, 15}, 0.7},
		},
		Auxiliary: []VoiceTemplate{
			{Clap, []int{5, 13}, 0.5},
			{CongaHigh, []int{4, 8, 12, 16}, 0.2},
			{PedalHat, []int{2, 4, 6, 8, 10, 12, 14, 16}, 0.3},
		},
		BassMotifs: [][]bool{
			motif(1, 0, 0, 1, 0, 1, 0, 0),
			motif(1, 0, 1, 0, 1, 0, 0, 1),
			motif(1, 0, 1, 1, 0, 1, 0, 1),
		},
		BassNoteLength: 6,
		Progressions:   [][]int{{0, 3, 4, 3}, {0, 5, 3, 4}, {0, 4, 3, 5}, {0, 2, 3, 4}},
		ChordRhythms: [][]bool{
			motif(1, 0, 1, 0, 0, 1, 0, 0),
			motif(1, 0, 0, 1, 0, 0, 1, 1),
			motif(1, 1, 0, 1, 0, 1, 0, 1),
		},
		MelodyFlavour: []int{0, 3, 5, 7, 10},
	},
	GenreAmbient: {
		Core: []VoiceTemplate{
			{Kick, []int{1, 9}, 0.5},
			{Shaker, []int{1, 3, 5, 7, 9, 11, 13, 15}, 0.6},
		},
		Auxiliary: []VoiceTemplate{
			{Guiro, []int{3, 7, 11, 15}, 0.3},
			{Crash, []int{1}, 0.2},
		},
		BassMotifs: [][]bool{
			motif(1, 0, 0, 0, 0, 0, 0, 0),
			motif(0, 0, 1, 0, 0, 0, 1, 0),
			motif(1, 0, 0, 1, 0, 0, 0, 1),
		},
		BassNoteLength: 24,
		Progressions:   [][]int{{0, 3, 0, 4}, {0, 5, 3, 0}, {0, 2, 5, 3}},
		ChordRhythms: [][]bool{
			motif(1, 0, 0, 0, 0, 0, 0, 0),
			motif(1, 0, 0, 0, 1, 0, 0, 0),
		},
		MelodyFlavour: []int{0, 2, 4, 7, 9},
	},
	GenreHouse: {
		Core: []VoiceTemplate{
			{Kick, []int{1, 5, 9, 13}, 1.0},
			{Snare, []int{5, 13}, 0.5},
			{ClosedHat, []int{2, 4, 6, 8, 10, 12, 14, 16}, 0.8},
		},
		Auxiliary: []VoiceTemplate{
			{Clap, []int{2, 6, 10, 14}, 0.4},
			{Ride, []int{1, 5, 9, 13}, 0.3},
		},
		BassMotifs: [][]bool{
			motif(1, 0, 1, 0, 1, 0, 1, 0),
			motif(1, 0, 1, 1, 0, 1, 0, 1),
			motif(1, 1, 0, 1, 0, 1, 1, 0),
		},
		BassNoteLength: 6,
		Progressions:   [][]int{{0, 5, 3, 4}, {1, 4, 0, 0}, {0, 3, 5, 4}},
		ChordRhythms: [][]bool{
			motif(0, 0, 1, 0, 0, 0, 1, 0),
			motif(1, 0, 0, 1, 0, 0, 1, 0),
			motif(0, 1, 0, 1, 0, 1, 0, 1),
		},
		MelodyFlavour: []int{0, 2, 4, 5, 7, 9, 11},
	},
	GenreExperimental: {
		Core: []VoiceTemplate{
			{Metal, []int{1, 5, 9, 13}, 0.2},
			{Chi, everyStep, 0.3},
		},
		Auxiliary: []VoiceTemplate{
			{LowTom, []int{2, 6, 10, 14}, 0.4},
			{HighTom, []int{4, 8, 12, 16}, 0.4},
		},
		BassMotifs: [][]bool{
			motif(1, 1, 0, 1, 0, 0, 1, 1),
			motif(1, 0, 1, 1, 0, 1, 0, 1),
			motif(1, 0, 0, 1, 1, 0, 1, 0),
		},
		BassNoteLength: 3,
		Progressions:   [][]int{{0, 1, 6, 3}, {0, 6, 4, 1}, {0, 3, 6, 2}},
		ChordRhythms: [][]bool{
			motif(1, 0, 0, 1, 0, 1, 1, 0),
			motif(1, 1, 0, 0, 1, 0, 0, 1),
		},
		MelodyFlavour: []int{0, 1, 4, 6, 7, 9, 10},
	},
}

func isCoreInstrument(v Voice) bool {
	return v == Kick || v == Snare || v == ClosedHat
}
