package generate

import (
	"math"

	"go-genseq/debug"
	"go-genseq/pattern"
	"go-genseq/theory"
)

var noteDurations = []int{1, 2, 4}

// phrase is one half of a call/response pair
type phrase struct {
	from, to   int // 0-based step range, to exclusive
	contour    int
	complexity int
	register   int
	tag        pattern.Tag
}

// Melody generates a call phrase followed by a response phrase. The
// response inverts the contour and leans towards intervals consonant with
// the end of the call.
func (g *Generator) Melody(song Song, p MelodyParams) *pattern.Pattern {
	tmpl, root := resolve(song)
	length := p.Length
	if length < 1 {
		length = 32
	}
	out := pattern.New(length)
	candidates := melodyIntervals(song.Scale, tmpl.MelodyFlavour)

	callLen := length * clampInt(p.CallResponseBalance, 0, 100) / 100
	maxDelay := length / 8
	if maxDelay > 4 {
		maxDelay = 4
	}
	delay := clampInt(p.ResponseDelay, 0, 100) * maxDelay / 100

	call := phrase{
		from:       0,
		to:         callLen,
		contour:    p.MelodicContour,
		complexity: p.RhythmicComplexity,
		register:   p.Register,
		tag:        pattern.TagNone,
	}
	response := phrase{
		from:       callLen + delay,
		to:         length,
		contour:    100 - clampInt(p.MelodicContour, 0, 100),
		complexity: responseComplexity(p.RhythmicComplexity, p.ResponseComplexity),
		register:   p.ResponseRegister,
		tag:        pattern.TagResponse,
	}

	callNotes := g.walkPhrase(out, call, int(root), candidates, nil, p)
	g.walkPhrase(out, response, int(root), candidates, lastN(callNotes, 3), p)
	return out
}

// walkPhrase emits a monophonic line over the phrase range and returns the
// pitches it placed
func (g *Generator) walkPhrase(out *pattern.Pattern, ph phrase, root int, intervals []int, context []uint8, p MelodyParams) []uint8 {
	var placed []uint8
	density := 0.1 + percent(ph.complexity)*0.7
	lo, hi := registerBand(ph.register)
	pool := candidatePitches(root, intervals, lo, hi)

	step := ph.from
	for step < ph.to {
		if !chance(g.rnd, density) {
			step++
			continue
		}
		dur := noteDurations[pick(g.rnd, len(noteDurations))]
		if step+dur > ph.to {
			step++
			continue
		}
		pitch := g.pickPitch(pool, root, ph.contour, context)
		pitch = g.alignToChord(pitch, step+1, p)
		vel := 60 + pick(g.rnd, 20)
		if step%8 == 0 {
			vel += 10
		}
		add(out, pattern.Note{
			Pitch:    pitch,
			Velocity: pattern.ClampVelocity(vel),
			Start:    step + 1,
			End:      step + dur + 1,
			Tag:      ph.tag,
		})
		placed = append(placed, pitch)
		step += dur
	}
	return placed
}

// pickPitch samples a candidate weighted by closeness to the contour target
func (g *Generator) pickPitch(pool []uint8, root, contour int, context []uint8) uint8 {
	if len(pool) == 0 {
		debug.Warn("%v, using root %d", ErrEmptyCandidates, root)
		return theory.ClampPitch(root)
	}
	target := int(math.Floor(percent(contour) * float64(len(pool)-1)))
	weights := make([]float64, len(pool))
	total := 0.0
	for i, pitch := range pool {
		w := 1 / float64(1+absInt(i-target))
		for _, c := range context {
			w *= consonance(int(pitch) - int(c))
		}
		weights[i] = w
		total += w
	}
	r := g.rnd.Float64() * total
	for i, w := range weights {
		if r < w {
			return pool[i]
		}
		r -= w
	}
	return pool[len(pool)-1]
}

// alignToChord snaps a pitch to the nearest chord tone sounding at step
func (g *Generator) alignToChord(pitch uint8, step int, p MelodyParams) uint8 {
	if p.Chords == nil || p.HarmonyAlignment <= 50 {
		return pitch
	}
	if !chance(g.rnd, percent(p.HarmonyAlignment)) {
		return pitch
	}
	best, bestDist := pitch, -1
	for _, n := range p.Chords.ActiveAt(pattern.Wrap(step, p.Chords.Length)) {
		if n.Tag == pattern.TagDrone {
			continue
		}
		d := absInt(int(n.Pitch) - int(pitch))
		if bestDist < 0 || d < bestDist {
			best, bestDist = n.Pitch, d
		}
	}
	return best
}

// melodyIntervals intersects the scale with the genre's flavour set
func melodyIntervals(scale theory.Scale, flavour []int) []int {
	scaleIv := scale.Intervals()
	var out []int
	for _, f := range flavour {
		for _, s := range scaleIv {
			if f == s {
				out = append(out, f)
				break
			}
		}
	}
	if len(out) == 0 {
		return scaleIv
	}
	return out
}

func candidatePitches(root int, intervals []int, lo, hi int) []uint8 {
	var out []uint8
	for pitch := lo; pitch <= hi; pitch++ {
		if theory.InScale(pitch, root, intervals) {
			out = append(out, uint8(pitch))
		}
	}
	return out
}

// registerBand maps a 0-100 register knob to a MIDI range
func registerBand(register int) (lo, hi int) {
	switch {
	case register <= 30:
		return 48, 60
	case register <= 70:
		return 60, 72
	default:
		return 72, 84
	}
}

func responseComplexity(base, response int) int {
	adjusted := float64(base) * (1 + float64(response-50)/50)
	return clampInt(int(math.Round(adjusted)), 0, 100)
}

func consonance(interval int) float64 {
	switch absInt(interval) % 12 {
	case 0, 5, 7:
		return 1.5
	case 3, 4, 8, 9:
		return 1.3
	}
	return 1
}

func lastN(p []uint8, n int) []uint8 {
	if len(p) <= n {
		return p
	}
	return p[len(p)-n:]
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
