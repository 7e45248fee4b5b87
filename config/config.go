package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-genseq/generate"
	"go-genseq/theory"

	"gopkg.in/yaml.v3"
)

var ErrInvalidChannel = errors.New("midi channel must be 0-16")

// PortsConfig names the MIDI ports, matched by case-insensitive substring
type PortsConfig struct {
	ClockInput string `json:"clockInput,omitempty" yaml:"clockInput,omitempty"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
}

// ChannelsConfig sets send channels (1-16); 0 keeps the built-in default
type ChannelsConfig struct {
	Drums      uint8 `json:"drums,omitempty" yaml:"drums,omitempty"`
	Bass       uint8 `json:"bass,omitempty" yaml:"bass,omitempty"`
	Chords     uint8 `json:"chords,omitempty" yaml:"chords,omitempty"`
	Melody     uint8 `json:"melody,omitempty" yaml:"melody,omitempty"`
	Extensions uint8 `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Drones     uint8 `json:"drones,omitempty" yaml:"drones,omitempty"`
	Response   uint8 `json:"response,omitempty" yaml:"response,omitempty"`
}

// SongConfig holds the settings shared by every track
type SongConfig struct {
	Genre string `json:"genre" yaml:"genre"`
	Key   string `json:"key" yaml:"key"`
	Scale string `json:"scale" yaml:"scale"`
}

type DrumsConfig struct {
	Density    float64 `json:"density" yaml:"density"`
	Variation  float64 `json:"variation" yaml:"variation"`
	Balance    float64 `json:"balance" yaml:"balance"`
	Repetition float64 `json:"repetition" yaml:"repetition"`
	Preserve   float64 `json:"preserve" yaml:"preserve"`
	Length     int     `json:"length" yaml:"length"`
	Kit        string  `json:"kit" yaml:"kit"`
}

type BassConfig struct {
	PhraseEvolution    int `json:"phraseEvolution" yaml:"phraseEvolution"`
	RhythmicComplexity int `json:"rhythmicComplexity" yaml:"rhythmicComplexity"`
	GrooveTightness    int `json:"grooveTightness" yaml:"grooveTightness"`
	BassMovement       int `json:"bassMovement" yaml:"bassMovement"`
	Length             int `json:"length" yaml:"length"`
}

type ChordsConfig struct {
	Complexity         int  `json:"complexity" yaml:"complexity"`
	Variation          int  `json:"variation" yaml:"variation"`
	VoicingSpread      int  `json:"voicingSpread" yaml:"voicingSpread"`
	RhythmicPlacement  int  `json:"rhythmicPlacement" yaml:"rhythmicPlacement"`
	Drones             bool `json:"drones" yaml:"drones"`
	SeparateExtensions bool `json:"separateExtensions" yaml:"separateExtensions"`
	Slots              int  `json:"slots" yaml:"slots"`
}

type MelodyConfig struct {
	MelodicContour      int `json:"melodicContour" yaml:"melodicContour"`
	RhythmicComplexity  int `json:"rhythmicComplexity" yaml:"rhythmicComplexity"`
	Register            int `json:"register" yaml:"register"`
	HarmonyAlignment    int `json:"harmonyAlignment" yaml:"harmonyAlignment"`
	ResponseDelay       int `json:"responseDelay" yaml:"responseDelay"`
	ResponseComplexity  int `json:"responseComplexity" yaml:"responseComplexity"`
	CallResponseBalance int `json:"callResponseBalance" yaml:"callResponseBalance"`
	ResponseRegister    int `json:"responseRegister" yaml:"responseRegister"`
	Length              int `json:"length" yaml:"length"`
}

// GenerationConfig holds the starting parameters of each generator
type GenerationConfig struct {
	Drums  DrumsConfig  `json:"drums" yaml:"drums"`
	Bass   BassConfig   `json:"bass" yaml:"bass"`
	Chords ChordsConfig `json:"chords" yaml:"chords"`
	Melody MelodyConfig `json:"melody" yaml:"melody"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty" yaml:"palette,omitempty"` // GIMP .gpl file
}

// Config is the main configuration structure
type Config struct {
	Ports       PortsConfig      `json:"ports" yaml:"ports"`
	Channels    ChannelsConfig   `json:"channels" yaml:"channels"`
	FlushOnStop bool             `json:"flushOnStop" yaml:"flushOnStop"`
	Seed        int64            `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 = seed from time
	Song        SongConfig       `json:"song" yaml:"song"`
	Generation  GenerationConfig `json:"generation" yaml:"generation"`
	UI          UIConfig         `json:"ui" yaml:"ui"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	song := generate.DefaultSong()
	d := generate.DefaultDrumParams()
	b := generate.DefaultBassParams()
	c := generate.DefaultChordParams()
	m := generate.DefaultMelodyParams()
	return &Config{
		FlushOnStop: true,
		Song: SongConfig{
			Genre: string(song.Genre),
			Key:   song.Key,
			Scale: string(song.Scale),
		},
		Generation: GenerationConfig{
			Drums: DrumsConfig{
				Density:    d.Density,
				Variation:  d.Variation,
				Balance:    d.Balance,
				Repetition: d.Repetition,
				Preserve:   d.Preserve,
				Length:     d.Length,
				Kit:        d.Kit,
			},
			Bass: BassConfig{
				PhraseEvolution:    b.PhraseEvolution,
				RhythmicComplexity: b.RhythmicComplexity,
				GrooveTightness:    b.GrooveTightness,
				BassMovement:       b.BassMovement,
				Length:             b.Length,
			},
			Chords: ChordsConfig{
				Complexity:         c.Complexity,
				Variation:          c.Variation,
				VoicingSpread:      c.VoicingSpread,
				RhythmicPlacement:  c.RhythmicPlacement,
				Drones:             c.Drones,
				SeparateExtensions: c.SeparateExtensions,
				Slots:              c.Slots,
			},
			Melody: MelodyConfig{
				MelodicContour:      m.MelodicContour,
				RhythmicComplexity:  m.RhythmicComplexity,
				Register:            m.Register,
				HarmonyAlignment:    m.HarmonyAlignment,
				ResponseDelay:       m.ResponseDelay,
				ResponseComplexity:  m.ResponseComplexity,
				CallResponseBalance: m.CallResponseBalance,
				ResponseRegister:    m.ResponseRegister,
				Length:              m.Length,
			},
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-genseq"), nil
}

// ConfigPath returns the path of the config file. A YAML file is used if
// present, otherwise config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads a JSON or YAML config. Fields missing from the file keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if errJSON := json.Unmarshal(data, cfg); errJSON != nil {
		cfg = DefaultConfig()
		if errYaml := yaml.Unmarshal(data, cfg); errYaml != nil {
			return nil, fmt.Errorf("%s could not be parsed as .json (%v) or .yml (%v)", path, errJSON, errYaml)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default location
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config as YAML if the extension says so, else JSON
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the channel map
func (c *Config) Validate() error {
	ch := c.Channels
	for name, v := range map[string]uint8{
		"drums":      ch.Drums,
		"bass":       ch.Bass,
		"chords":     ch.Chords,
		"melody":     ch.Melody,
		"extensions": ch.Extensions,
		"drones":     ch.Drones,
		"response":   ch.Response,
	} {
		if v > 16 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidChannel, name, v)
		}
	}
	return nil
}

// SongSettings resolves the song names. Unknown values fall back to the
// defaults and are reported in the joined error.
func (c *Config) SongSettings() (generate.Song, error) {
	genre, errGenre := generate.ParseGenre(c.Song.Genre)
	scale, errScale := theory.ParseScale(c.Song.Scale)
	key := c.Song.Key
	_, errKey := theory.KeyRoot(key)
	if errKey != nil {
		key = "C"
	}
	return generate.Song{Genre: genre, Key: key, Scale: scale}, errors.Join(errGenre, errScale, errKey)
}

// Params converts the generation section into generator parameters
func (c *Config) Params() []generate.Params {
	g := c.Generation
	return []generate.Params{
		generate.DrumParams{
			Density:    g.Drums.Density,
			Variation:  g.Drums.Variation,
			Balance:    g.Drums.Balance,
			Repetition: g.Drums.Repetition,
			Preserve:   g.Drums.Preserve,
			Length:     g.Drums.Length,
			Kit:        g.Drums.Kit,
		},
		generate.BassParams{
			PhraseEvolution:    g.Bass.PhraseEvolution,
			RhythmicComplexity: g.Bass.RhythmicComplexity,
			GrooveTightness:    g.Bass.GrooveTightness,
			BassMovement:       g.Bass.BassMovement,
			Length:             g.Bass.Length,
			Kit:                g.Drums.Kit,
		},
		generate.ChordParams{
			Complexity:         g.Chords.Complexity,
			Variation:          g.Chords.Variation,
			VoicingSpread:      g.Chords.VoicingSpread,
			RhythmicPlacement:  g.Chords.RhythmicPlacement,
			Drones:             g.Chords.Drones,
			SeparateExtensions: g.Chords.SeparateExtensions,
			Slots:              g.Chords.Slots,
		},
		generate.MelodyParams{
			MelodicContour:      g.Melody.MelodicContour,
			RhythmicComplexity:  g.Melody.RhythmicComplexity,
			Register:            g.Melody.Register,
			HarmonyAlignment:    g.Melody.HarmonyAlignment,
			ResponseDelay:       g.Melody.ResponseDelay,
			ResponseComplexity:  g.Melody.ResponseComplexity,
			CallResponseBalance: g.Melody.CallResponseBalance,
			ResponseRegister:    g.Melody.ResponseRegister,
			Length:              g.Melody.Length,
		},
	}
}
