package generate

import (
	"math"

	"go-genseq/pattern"
	"go-genseq/theory"
)

const motifLength = 8

// Bass generates a monophonic bass line. Notes never overlap: each one
// starts no earlier than the previous one ends.
func (g *Generator) Bass(song Song, p BassParams) *pattern.Pattern {
	tmpl, _ := resolve(song)
	length := p.Length
	if length < 1 {
		length = 32
	}
	evolution := percent(p.PhraseEvolution)
	complexity := percent(p.RhythmicComplexity)
	tightness := percent(p.GrooveTightness)
	movement := percent(p.BassMovement)

	rhythm := g.bassRhythm(tmpl, p, length, evolution, complexity, tightness)
	pitches := g.bassPitches(song, length, evolution, movement)

	out := pattern.New(length)
	lastEnd := 0
	for i, on := range rhythm {
		if !on {
			continue
		}
		start := i + 1
		if start < lastEnd {
			start = lastEnd
		}
		if start > length {
			break
		}
		end := start + g.bassNoteLength(tmpl.BassNoteLength, tightness)
		if end > length+1 {
			end = length + 1
		}
		add(out, pattern.Note{
			Pitch:    pitches[i],
			Velocity: pattern.ClampVelocity(g.bassVelocity(i, complexity)),
			Start:    start,
			End:      end,
		})
		lastEnd = end
	}
	return out
}

// bassRhythm builds the on/off grid: a rotated genre motif, kicks from the
// drum track, extra hits from complexity and then rests
func (g *Generator) bassRhythm(tmpl *GenreTemplate, p BassParams, length int, evolution, complexity, tightness float64) []bool {
	rhythm := make([]bool, length)
	motif := tmpl.BassMotifs[pick(g.rnd, len(tmpl.BassMotifs))]
	shift := int(math.Floor(evolution * motifLength))
	for i := range rhythm {
		if motif[(i%motifLength+shift)%motifLength] && chance(g.rnd, 0.8) {
			rhythm[i] = true
		}
	}

	if p.Drums != nil {
		kit := GetKit(p.Kit)
		for _, n := range p.Drums.Notes {
			if !kit.IsKick(n.Pitch) {
				continue
			}
			if chance(g.rnd, complexity) {
				rhythm[pattern.Wrap(n.Start, length)-1] = true
			}
		}
	}

	for i := range rhythm {
		if !rhythm[i] && chance(g.rnd, complexity*0.3) {
			rhythm[i] = true
		}
	}

	rest := clamp01(1 - (complexity*0.7 + tightness*0.3))
	for i := range rhythm {
		if !rhythm[i] || !chance(g.rnd, rest) {
			continue
		}
		// never leave three empty steps in a row
		if i >= 2 && !rhythm[i-1] && !rhythm[i-2] {
			continue
		}
		rhythm[i] = false
	}
	return rhythm
}

// bassPitches walks scale degrees two octaves below the key root
func (g *Generator) bassPitches(song Song, length int, evolution, movement float64) []uint8 {
	out := make([]uint8, length)
	maxInterval := int(math.Floor(movement * 7))
	degree := 0
	for i := range out {
		if i > 0 && chance(g.rnd, evolution) {
			dir := -1
			if g.rnd.Float64() > 0.5 {
				dir = 1
			}
			degree = (degree + pick(g.rnd, maxInterval)*dir + 7) % 7
		}
		pitch, _ := theory.PitchAt(song.Key, song.Scale, degree)
		out[i] = theory.ClampPitch(int(pitch) - 24)
	}
	return out
}

func (g *Generator) bassNoteLength(base int, tightness float64) int {
	spread := (1 - tightness) * 2
	factor := 1 + jitter(g.rnd, spread)
	n := int(math.Round(float64(base) * factor))
	if n < 1 {
		return 1
	}
	return n
}

func (g *Generator) bassVelocity(i int, complexity float64) int {
	vel := 100
	if i%8 != 0 {
		vel -= 20
	}
	if chance(g.rnd, complexity*0.2) {
		vel += 30
	}
	spread := int(math.Floor(complexity * 20))
	if spread > 0 {
		vel += pick(g.rnd, spread) - spread/2
	}
	return vel
}
