package generate

import (
	"math"

	"go-genseq/pattern"
)

const sectionLength = 16

// drumHit is a drum note while the pattern is being built
type drumHit struct {
	voice    Voice
	step     int
	velocity int
	anchored bool
}

// Drums generates a drum pattern from the genre's voice templates
func (g *Generator) Drums(song Song, p DrumParams) *pattern.Pattern {
	tmpl, _ := resolve(song)
	kit := GetKit(p.Kit)
	length := p.Length
	if length < 1 {
		length = 32
	}
	density := clamp01(p.Density)
	variation := clamp01(p.Variation)
	balance := clamp01(p.Balance)
	repetition := clamp01(p.Repetition)

	hits := g.buildFromTemplate(tmpl, density, balance, length)
	g.anchorCoreHits(hits, clamp01(p.Preserve))
	g.applyVariation(hits, variation, length)
	hits = g.addFills(hits, variation, length)
	hits = g.applyRepetition(hits, tmpl, repetition, length)
	hits = g.extendBlocks(hits, length)

	out := pattern.New(length)
	for _, h := range hits {
		vel := h.velocity
		if vel == 0 {
			vel = 100
		}
		add(out, pattern.Note{
			Pitch:    kit.Note(h.voice),
			Velocity: pattern.ClampVelocity(vel),
			Start:    h.step,
			End:      h.step + 1,
		})
	}
	out.Sort()
	return out
}

// buildFromTemplate tiles each voice's 16-step base across the track and
// keeps hits probabilistically
func (g *Generator) buildFromTemplate(tmpl *GenreTemplate, density, balance float64, length int) []drumHit {
	var hits []drumHit
	layer := func(voices []VoiceTemplate, scale float64) {
		for _, vt := range voices {
			prob := vt.Probability * density * scale
			for off := 0; off < length; off += sectionLength {
				for _, s := range vt.Steps {
					step := s + off
					if step > length {
						continue
					}
					if chance(g.rnd, prob) {
						hits = append(hits, drumHit{voice: vt.Voice, step: step, velocity: g.drumVelocity(step, 0)})
					}
				}
			}
		}
	}
	layer(tmpl.Core, 1-balance/2)
	layer(tmpl.Auxiliary, balance)
	return hits
}

// anchorCoreHits marks a share of kick/snare/closed-hat hits as fixed so
// section regeneration leaves them in place
func (g *Generator) anchorCoreHits(hits []drumHit, preserve float64) {
	for i := range hits {
		if isCoreInstrument(hits[i].voice) && chance(g.rnd, preserve) {
			hits[i].anchored = true
		}
	}
}

// drumVelocity accents downbeats, with spread scaled by variation
func (g *Generator) drumVelocity(step int, variation float64) int {
	base := 80
	if (step-1)%4 == 0 {
		base = 100
	}
	if variation <= 0 {
		return base
	}
	spread := 30 * variation
	v := int(math.Floor(float64(base) + jitter(g.rnd, spread/2)))
	return clampInt(v, 30, 127)
}

func (g *Generator) applyVariation(hits []drumHit, variation float64, length int) {
	for i := range hits {
		h := &hits[i]
		if h.voice != Kick && h.voice != Snare {
			offset := jitter(g.rnd, 0.25*variation)
			h.step = clampInt(int(math.Round(float64(h.step)+offset)), 1, length)
		}
		v := float64(h.velocity) + jitter(g.rnd, 10*variation)
		h.velocity = clampInt(int(math.Floor(v)), 30, 127)
	}
}

// addFills appends a tom run over the last four steps of a section
func (g *Generator) addFills(hits []drumHit, variation float64, length int) []drumHit {
	toms := []Voice{LowTom, MidTom, HighTom}
	for section := 0; section < length/sectionLength; section++ {
		if !chance(g.rnd, variation*0.3) {
			continue
		}
		first := (section+1)*sectionLength - 3
		for step := first; step < first+4 && step <= length; step++ {
			hits = append(hits, drumHit{
				voice:    toms[pick(g.rnd, len(toms))],
				step:     step,
				velocity: 70 + pick(g.rnd, 40),
			})
		}
	}
	return hits
}

// applyRepetition rebuilds whole sections from the template. High
// repetition means more sections are regenerated, not copied.
func (g *Generator) applyRepetition(hits []drumHit, tmpl *GenreTemplate, repetition float64, length int) []drumHit {
	if repetition < 0.7 {
		return hits
	}
	for section := 0; section < length/sectionLength; section++ {
		if !chance(g.rnd, repetition) {
			continue
		}
		lo := section*sectionLength + 1
		hi := lo + sectionLength
		kept := hits[:0]
		for _, h := range hits {
			if h.anchored || h.step < lo || h.step >= hi {
				kept = append(kept, h)
			}
		}
		hits = kept

		voices := append(append([]VoiceTemplate{}, tmpl.Core...), tmpl.Auxiliary...)
		for _, vt := range voices {
			for _, s := range vt.Steps {
				step := lo - 1 + s
				if step >= hi || step > length || hasDrumHit(hits, vt.Voice, step) {
					continue
				}
				if chance(g.rnd, vt.Probability) {
					hits = append(hits, drumHit{voice: vt.Voice, step: step, velocity: g.drumVelocity(step, 0.5)})
				}
			}
		}
	}
	return hits
}

// extendBlocks copies the first 16-step block into every later block with
// fresh velocity jitter. Steps that already hold the same voice are skipped.
func (g *Generator) extendBlocks(hits []drumHit, length int) []drumHit {
	if length <= sectionLength {
		return hits
	}
	var first []drumHit
	for _, h := range hits {
		if h.step <= sectionLength {
			first = append(first, h)
		}
	}
	for off := sectionLength; off < length; off += sectionLength {
		for _, h := range first {
			step := h.step + off
			if step > length || hasDrumHit(hits, h.voice, step) {
				continue
			}
			v := float64(h.velocity) + jitter(g.rnd, 10)
			hits = append(hits, drumHit{voice: h.voice, step: step, velocity: clampInt(int(v), 30, 127)})
		}
	}
	return hits
}

func hasDrumHit(hits []drumHit, v Voice, step int) bool {
	for _, h := range hits {
		if h.voice == v && h.step == step {
			return true
		}
	}
	return false
}
