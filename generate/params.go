package generate

import (
	"go-genseq/pattern"
	"go-genseq/theory"
)

// Song holds the parameters shared by every track
type Song struct {
	Genre Genre
	Key   string
	Scale theory.Scale
}

// DefaultSong is edm in C major
func DefaultSong() Song {
	return Song{Genre: DefaultGenre, Key: "C", Scale: theory.ScaleMajor}
}

// Params is the per-track parameter set. The set of implementations is
// closed: DrumParams, BassParams, ChordParams and MelodyParams.
type Params interface {
	Role() pattern.Role
	params()
}

// DrumParams controls the drum generator. Knobs are normalized to 0-1.
type DrumParams struct {
	Density    float64
	Variation  float64
	Balance    float64 // 0 = core voices only, 1 = auxiliary voices only
	Repetition float64
	Preserve   float64 // fraction of core hits anchored against regeneration
	Length     int     // steps, multiples of 16
	Kit        string
}

// BassParams controls the bass generator. Knobs are 0-100.
type BassParams struct {
	PhraseEvolution    int
	RhythmicComplexity int
	GrooveTightness    int
	BassMovement       int
	Length             int

	// Drums is the already generated drum track used for kick alignment
	Drums *pattern.Pattern
	Kit   string
}

// ChordParams controls the chord generator. Knobs are 0-100.
type ChordParams struct {
	Complexity         int
	Variation          int
	VoicingSpread      int
	RhythmicPlacement  int
	Drones             bool
	SeparateExtensions bool
	Slots              int // chords in the progression, 8 steps each
}

// MelodyParams controls the melody and call/response generator. Knobs are 0-100.
type MelodyParams struct {
	MelodicContour     int
	RhythmicComplexity int
	Register           int
	HarmonyAlignment   int

	ResponseDelay       int
	ResponseComplexity  int
	CallResponseBalance int // share of the length given to the call phrase
	ResponseRegister    int

	Length int

	// Chords is optional harmonic context
	Chords *pattern.Pattern
}

func (DrumParams) Role() pattern.Role   { return pattern.Drums }
func (BassParams) Role() pattern.Role   { return pattern.Bass }
func (ChordParams) Role() pattern.Role  { return pattern.Chords }
func (MelodyParams) Role() pattern.Role { return pattern.Melody }

func (DrumParams) params()   {}
func (BassParams) params()   {}
func (ChordParams) params()  {}
func (MelodyParams) params() {}

func DefaultDrumParams() DrumParams {
	return DrumParams{
		Density:    0.5,
		Variation:  0.5,
		Balance:    0.5,
		Repetition: 0.5,
		Preserve:   0.7,
		Length:     32,
		Kit:        DefaultKit,
	}
}

func DefaultBassParams() BassParams {
	return BassParams{
		PhraseEvolution:    50,
		RhythmicComplexity: 50,
		GrooveTightness:    50,
		BassMovement:       50,
		Length:             32,
		Kit:                DefaultKit,
	}
}

func DefaultChordParams() ChordParams {
	return ChordParams{
		Complexity:        50,
		Variation:         50,
		VoicingSpread:     50,
		RhythmicPlacement: 50,
		Slots:             4,
	}
}

func DefaultMelodyParams() MelodyParams {
	return MelodyParams{
		MelodicContour:      50,
		RhythmicComplexity:  50,
		Register:            50,
		HarmonyAlignment:    50,
		ResponseDelay:       50,
		ResponseComplexity:  50,
		CallResponseBalance: 50,
		ResponseRegister:    50,
		Length:              32,
	}
}

// DefaultParams returns the default parameter set for a role
func DefaultParams(r pattern.Role) Params {
	switch r {
	case pattern.Bass:
		return DefaultBassParams()
	case pattern.Chords:
		return DefaultChordParams()
	case pattern.Melody:
		return DefaultMelodyParams()
	default:
		return DefaultDrumParams()
	}
}
