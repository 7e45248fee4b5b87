package theory

// ChordType is a list of semitone intervals from the chord root
type ChordType []int

var (
	Triad   = ChordType{0, 4, 7}
	Seventh = ChordType{0, 4, 7, 10}
	Ninth   = ChordType{0, 4, 7, 10, 14}
)

// ChordTypeFor picks a chord type from a 0-100 complexity value
func ChordTypeFor(complexity int) ChordType {
	switch {
	case complexity < 25:
		return Triad
	case complexity < 60:
		return Seventh
	default:
		return Ninth
	}
}

// Chord splits its tones into the main triad and any extensions
type Chord struct {
	Main       []uint8
	Extensions []uint8
}

// BuildChord stacks intervals on root. Tones past the first pair are raised
// by whole octaves as spread (0-100) grows.
func BuildChord(root uint8, intervals ChordType, spread int) Chord {
	var c Chord
	for i, iv := range intervals {
		shift := (spread / 33) * (i / 2) * 12
		p := ClampPitch(int(root) + iv + shift)
		if i < 3 {
			c.Main = append(c.Main, p)
		} else {
			c.Extensions = append(c.Extensions, p)
		}
	}
	return c
}
