package generate

import (
	"errors"

	"go-genseq/debug"
	"go-genseq/pattern"
	"go-genseq/theory"
)

var ErrEmptyCandidates = errors.New("no pitch candidates in register")

// Generator builds patterns for all four roles from one random source.
// It is not safe for concurrent use.
type Generator struct {
	rnd Rand
}

// New creates a generator drawing from rnd
func New(rnd Rand) *Generator {
	if rnd == nil {
		rnd = NewRand(1)
	}
	return &Generator{rnd: rnd}
}

// Generate dispatches to the generator for the parameter set's role
func (g *Generator) Generate(song Song, p Params) *pattern.Pattern {
	switch p := p.(type) {
	case DrumParams:
		return g.Drums(song, p)
	case BassParams:
		return g.Bass(song, p)
	case ChordParams:
		return g.Chords(song, p)
	case MelodyParams:
		return g.Melody(song, p)
	}
	return pattern.New(16)
}

// resolve applies the local recoveries for bad genre/key/scale values
func resolve(song Song) (*GenreTemplate, uint8) {
	tmpl, ok := templates[song.Genre]
	if !ok {
		debug.Warn("%v %q, using %s", ErrUnknownGenre, song.Genre, DefaultGenre)
		tmpl = templates[DefaultGenre]
	}
	root, err := theory.KeyRoot(song.Key)
	if err != nil {
		debug.Warn("%v, using root %d", err, root)
	}
	return tmpl, root
}

// add appends a note, logging rather than failing on degenerate input
func add(p *pattern.Pattern, n pattern.Note) {
	if err := p.Add(n); err != nil {
		debug.Warn("dropped note: %v", err)
	}
}
