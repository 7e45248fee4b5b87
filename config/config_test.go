package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go-genseq/config"
	"go-genseq/generate"
	"go-genseq/pattern"
	"go-genseq/theory"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSONKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"song": {"genre": "house"}, "channels": {"drums": 10}}`)
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Song.Genre != "house" || cfg.Song.Key != "C" {
		t.Errorf("unexpected song %+v", cfg.Song)
	}
	if cfg.Channels.Drums != 10 {
		t.Errorf("drums channel %d, want 10", cfg.Channels.Drums)
	}
	if !cfg.FlushOnStop {
		t.Error("flushOnStop default lost")
	}
	if cfg.Generation.Drums.Length != 32 {
		t.Errorf("drum length default lost: %d", cfg.Generation.Drums.Length)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
ports:
  clockInput: OP-XY
  output: IAC
flushOnStop: false
song:
  genre: ambient
  key: F#
  scale: dorian
generation:
  chords:
    drones: true
    slots: 8
`)
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ports.ClockInput != "OP-XY" || cfg.Ports.Output != "IAC" {
		t.Errorf("ports %+v", cfg.Ports)
	}
	if cfg.FlushOnStop {
		t.Error("flushOnStop should be false")
	}
	song, err := cfg.SongSettings()
	if err != nil {
		t.Fatal(err)
	}
	want := generate.Song{Genre: generate.GenreAmbient, Key: "F#", Scale: theory.ScaleDorian}
	if song != want {
		t.Errorf("song %+v, want %+v", song, want)
	}
	if !cfg.Generation.Chords.Drones || cfg.Generation.Chords.Slots != 8 {
		t.Errorf("chords %+v", cfg.Generation.Chords)
	}
	if cfg.Generation.Chords.Complexity != 50 {
		t.Errorf("chord complexity default lost: %d", cfg.Generation.Chords.Complexity)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	path := writeFile(t, "config.json", `{"channels": {"drones": 17}}`)
	if _, err := config.LoadFile(path); !errors.Is(err, config.ErrInvalidChannel) {
		t.Fatalf("expected ErrInvalidChannel, got %v", err)
	}
	path = writeFile(t, "broken.yml", "song: [unterminated")
	if _, err := config.LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestSongSettingsFallback(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Song = config.SongConfig{Genre: "polka", Key: "H", Scale: "phrygian"}
	song, err := cfg.SongSettings()
	if !errors.Is(err, generate.ErrUnknownGenre) || !errors.Is(err, theory.ErrInvalidKey) || !errors.Is(err, theory.ErrUnknownScale) {
		t.Fatalf("expected all three errors, got %v", err)
	}
	if song != generate.DefaultSong() {
		t.Errorf("fallback song %+v", song)
	}
}

func TestSaveFileYAML(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	cfg.Channels.Response = 9
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	if err := cfg.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	got, err := config.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("saved %+v\nloaded %+v", cfg, got)
	}
}

func TestParamsMatchDefaults(t *testing.T) {
	params := config.DefaultConfig().Params()
	if len(params) != pattern.NumRoles {
		t.Fatalf("expected %d parameter sets, got %d", pattern.NumRoles, len(params))
	}
	for i, p := range params {
		r := pattern.Roles()[i]
		if p.Role() != r {
			t.Errorf("params %d have role %s, want %s", i, p.Role(), r)
		}
		if !reflect.DeepEqual(p, generate.DefaultParams(r)) {
			t.Errorf("%s: %+v differs from defaults %+v", r, p, generate.DefaultParams(r))
		}
	}
}

func TestSaveAndLoadDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := config.DefaultConfig()
	cfg.Song.Genre = "house"
	cfg.Generation.Drums.Kit = "gm"
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}
	path, err := config.ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("saved to %s, want config.json", path)
	}
	got, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("saved %+v\nloaded %+v", cfg, got)
	}
}
