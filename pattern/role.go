package pattern

import (
	"fmt"
	"strings"
)

// Role is the musical job of a track
type Role int

const (
	Drums Role = iota
	Bass
	Chords
	Melody
)

// NumRoles is the number of generated tracks
const NumRoles = 4

// Roles lists every role in generation order
func Roles() []Role {
	return []Role{Drums, Bass, Chords, Melody}
}

func (r Role) String() string {
	switch r {
	case Drums:
		return "drums"
	case Bass:
		return "bass"
	case Chords:
		return "chords"
	case Melody:
		return "melody"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole resolves a role by name
func ParseRole(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "drums", "drum":
		return Drums, nil
	case "bass":
		return Bass, nil
	case "chords", "chord":
		return Chords, nil
	case "melody":
		return Melody, nil
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

// GCD returns the greatest common divisor of a and b
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// LCM returns the least common multiple of the positive lengths given.
// Non-positive entries are skipped; with nothing left the result is 0.
func LCM(lengths ...int) int {
	out := 0
	for _, l := range lengths {
		if l <= 0 {
			continue
		}
		if out == 0 {
			out = l
			continue
		}
		out = out / GCD(out, l) * l
	}
	return out
}
