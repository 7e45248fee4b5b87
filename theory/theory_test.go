package theory_test

import (
	"errors"
	"reflect"
	"testing"

	"go-genseq/theory"
)

func TestKeyRootAliases(t *testing.T) {
	pairs := [][2]string{{"C#", "Db"}, {"D#", "Eb"}, {"F#", "Gb"}, {"G#", "Ab"}, {"A#", "Bb"}, {"c", "C"}}
	for _, p := range pairs {
		a, err := theory.KeyRoot(p[0])
		if err != nil {
			t.Fatalf("KeyRoot(%q) failed: %v", p[0], err)
		}
		b, err := theory.KeyRoot(p[1])
		if err != nil {
			t.Fatalf("KeyRoot(%q) failed: %v", p[1], err)
		}
		if a != b {
			t.Errorf("%s and %s map to different roots: %d vs %d", p[0], p[1], a, b)
		}
	}
}

func TestKeyRootInvalid(t *testing.T) {
	root, err := theory.KeyRoot("H")
	if !errors.Is(err, theory.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if root != theory.DefaultRoot {
		t.Fatalf("expected default root %d, got %d", theory.DefaultRoot, root)
	}
}

func TestPitchAt(t *testing.T) {
	cases := []struct {
		key    string
		scale  theory.Scale
		degree int
		want   uint8
	}{
		{"C", theory.ScaleMajor, 0, 60},
		{"C", theory.ScaleMajor, 2, 64},
		{"C", theory.ScaleMajor, 7, 72},
		{"C", theory.ScaleMajor, 9, 76},
		{"C", theory.ScaleMajor, -1, 59},
		{"C", theory.ScaleMajor, -7, 48},
		{"C", theory.ScaleMajor, -8, 47},
		{"A", theory.ScaleMinor, 2, 72},
		{"D", theory.ScaleDorian, 5, 71},
		{"F", theory.ScaleLydian, 3, 71},
	}
	for _, c := range cases {
		got, err := theory.PitchAt(c.key, c.scale, c.degree)
		if err != nil {
			t.Fatalf("PitchAt(%s, %s, %d) failed: %v", c.key, c.scale, c.degree, err)
		}
		if got != c.want {
			t.Errorf("PitchAt(%s, %s, %d) = %d, want %d", c.key, c.scale, c.degree, got, c.want)
		}
	}
}

func TestPitchAtInvalidKeyUsesDefaultRoot(t *testing.T) {
	got, err := theory.PitchAt("X", theory.ScaleMajor, 4)
	if !errors.Is(err, theory.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestParseScale(t *testing.T) {
	s, err := theory.ParseScale("Dorian")
	if err != nil || s != theory.ScaleDorian {
		t.Fatalf("ParseScale(Dorian) = %v, %v", s, err)
	}
	s, err = theory.ParseScale("bebop")
	if !errors.Is(err, theory.ErrUnknownScale) || s != theory.ScaleMajor {
		t.Fatalf("ParseScale(bebop) = %v, %v", s, err)
	}
}

func TestInScale(t *testing.T) {
	major := theory.ScaleMajor.Intervals()
	for p := 0; p < 128; p++ {
		pc := p % 12
		want := pc == 0 || pc == 2 || pc == 4 || pc == 5 || pc == 7 || pc == 9 || pc == 11
		if got := theory.InScale(p, 60, major); got != want {
			t.Errorf("InScale(%d) = %v, want %v", p, got, want)
		}
	}
}

func TestBuildChordNoSpread(t *testing.T) {
	c := theory.BuildChord(60, theory.Seventh, 0)
	if !reflect.DeepEqual(c.Main, []uint8{60, 64, 67}) {
		t.Fatalf("main tones = %v, want [60 64 67]", c.Main)
	}
	if !reflect.DeepEqual(c.Extensions, []uint8{70}) {
		t.Fatalf("extensions = %v, want [70]", c.Extensions)
	}
}

func TestBuildChordSpread(t *testing.T) {
	c := theory.BuildChord(60, theory.Ninth, 66)
	// shift = 2 octaves per interval pair
	if !reflect.DeepEqual(c.Main, []uint8{60, 64, 91}) {
		t.Fatalf("main tones = %v", c.Main)
	}
	if !reflect.DeepEqual(c.Extensions, []uint8{94, 122}) {
		t.Fatalf("extensions = %v", c.Extensions)
	}
}

func TestChordTypeFor(t *testing.T) {
	if !reflect.DeepEqual(theory.ChordTypeFor(10), theory.Triad) {
		t.Error("complexity 10 should be a triad")
	}
	if !reflect.DeepEqual(theory.ChordTypeFor(25), theory.Seventh) {
		t.Error("complexity 25 should be a seventh")
	}
	if !reflect.DeepEqual(theory.ChordTypeFor(60), theory.Ninth) {
		t.Error("complexity 60 should be a ninth")
	}
}
