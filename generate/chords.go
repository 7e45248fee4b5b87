package generate

import (
	"go-genseq/debug"
	"go-genseq/pattern"
	"go-genseq/theory"
)

const slotSteps = 8

// Chords generates a progression with one chord per 8-step slot
func (g *Generator) Chords(song Song, p ChordParams) *pattern.Pattern {
	tmpl, _ := resolve(song)
	slots := p.Slots
	if slots < 1 {
		slots = 4
	}
	total := slots * slotSteps
	out := pattern.New(total)

	progression := tmpl.Progressions[pick(g.rnd, len(tmpl.Progressions))]
	rhythm := tmpl.ChordRhythms[pick(g.rnd, len(tmpl.ChordRhythms))]
	chordType := theory.ChordTypeFor(p.Complexity)
	duration := chordDuration(p.RhythmicPlacement)

	// collect every hit first so a chord can be cut at the next one, even
	// when that hit falls in the following slot
	type chordHit struct {
		start int
		chord theory.Chord
	}
	var hits []chordHit
	for i := 0; i < slots; i++ {
		if i > 0 && chance(g.rnd, percent(p.Variation)) {
			rhythm = tmpl.ChordRhythms[pick(g.rnd, len(tmpl.ChordRhythms))]
		}
		root, _ := theory.PitchAt(song.Key, song.Scale, progression[i%len(progression)])
		chord := theory.BuildChord(root, chordType, p.VoicingSpread)
		for j, hit := range rhythm {
			if hit {
				hits = append(hits, chordHit{start: i*slotSteps + j + 1, chord: chord})
			}
		}
	}

	for i, h := range hits {
		end := h.start + duration
		if i+1 < len(hits) && hits[i+1].start < end {
			end = hits[i+1].start
		}
		if end > total+1 {
			debug.Log("chords", "truncated hit at %d: end %d past %d", h.start, end, total+1)
			end = total + 1
		}
		for _, pitch := range h.chord.Main {
			add(out, pattern.Note{Pitch: pitch, Velocity: 100, Start: h.start, End: end, Tag: pattern.TagMain})
		}
		if !p.SeparateExtensions {
			continue
		}
		for _, pitch := range h.chord.Extensions {
			add(out, pattern.Note{Pitch: pitch, Velocity: 80, Start: h.start, End: end, Tag: pattern.TagExtension})
		}
	}

	if p.Drones {
		root, _ := theory.PitchAt(song.Key, song.Scale, 0)
		add(out, pattern.Note{Pitch: root, Velocity: 64, Start: 1, End: total + 1, Tag: pattern.TagDrone})
		add(out, pattern.Note{Pitch: theory.ClampPitch(int(root) + 7), Velocity: 48, Start: 1, End: total + 1, Tag: pattern.TagDrone})
	}
	out.Sort()
	return out
}

// chordDuration maps rhythmic placement to a note length in steps
func chordDuration(placement int) int {
	switch {
	case placement < 30:
		return 6
	case placement < 70:
		return 4
	default:
		return 2
	}
}
