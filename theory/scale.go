package theory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKey   = errors.New("invalid key")
	ErrUnknownScale = errors.New("unknown scale")
)

// DefaultRoot is substituted whenever a key name cannot be resolved.
const DefaultRoot uint8 = 60

// Scale identifies a seven-note mode
type Scale string

const (
	ScaleMajor      Scale = "major"
	ScaleMinor      Scale = "minor"
	ScaleDorian     Scale = "dorian"
	ScaleMixolydian Scale = "mixolydian"
	ScaleLydian     Scale = "lydian"
)

// Scale definitions - intervals from root (semitones)
var scales = map[Scale][]int{
	ScaleMajor:      {0, 2, 4, 5, 7, 9, 11},
	ScaleMinor:      {0, 2, 3, 5, 7, 8, 10},
	ScaleDorian:     {0, 2, 3, 5, 7, 9, 10},
	ScaleMixolydian: {0, 2, 4, 5, 7, 9, 10},
	ScaleLydian:     {0, 2, 4, 6, 7, 9, 11},
}

// ScaleNames returns the supported scales in display order
func ScaleNames() []Scale {
	return []Scale{ScaleMajor, ScaleMinor, ScaleDorian, ScaleMixolydian, ScaleLydian}
}

// ParseScale resolves a scale by name (case-insensitive)
func ParseScale(name string) (Scale, error) {
	s := Scale(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := scales[s]; !ok {
		return ScaleMajor, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	return s, nil
}

// Intervals returns a copy of the scale's semitone offsets. Unknown scales
// resolve to major.
func (s Scale) Intervals() []int {
	iv, ok := scales[s]
	if !ok {
		iv = scales[ScaleMajor]
	}
	out := make([]int, len(iv))
	copy(out, iv)
	return out
}

// Key roots in octave 4, enharmonic spellings share a pitch
var keyRoots = map[string]uint8{
	"C":  60,
	"B#": 60,
	"C#": 61,
	"DB": 61,
	"D":  62,
	"D#": 63,
	"EB": 63,
	"E":  64,
	"FB": 64,
	"F":  65,
	"E#": 65,
	"F#": 66,
	"GB": 66,
	"G":  67,
	"G#": 68,
	"AB": 68,
	"A":  69,
	"A#": 70,
	"BB": 70,
	"B":  71,
	"CB": 71,
}

// KeyNames returns the sharp spellings of the twelve keys
func KeyNames() []string {
	return []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
}

// KeyRoot returns the MIDI pitch of a key's root. On failure it returns
// DefaultRoot together with ErrInvalidKey so callers can keep going.
func KeyRoot(name string) (uint8, error) {
	if root, ok := keyRoots[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return root, nil
	}
	return DefaultRoot, fmt.Errorf("%w: %q", ErrInvalidKey, name)
}

// PitchAt maps a scale degree to a MIDI pitch. Degrees outside 0..6 carry
// into neighbouring octaves, negative degrees included.
func PitchAt(key string, scale Scale, degree int) (uint8, error) {
	root, err := KeyRoot(key)
	return pitchAt(int(root), scale.Intervals(), degree), err
}

func pitchAt(root int, intervals []int, degree int) uint8 {
	n := len(intervals)
	octave := floorDiv(degree, n)
	pc := intervals[degree-octave*n]
	return ClampPitch(root + pc + 12*octave)
}

// InScale reports whether pitch belongs to the interval set built on root
func InScale(pitch, root int, intervals []int) bool {
	pc := mod(pitch-root, 12)
	for _, iv := range intervals {
		if mod(iv, 12) == pc {
			return true
		}
	}
	return false
}

// ClampPitch limits a pitch to the MIDI range
func ClampPitch(p int) uint8 {
	if p < 0 {
		return 0
	}
	if p > 127 {
		return 127
	}
	return uint8(p)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}
