package generate

// Voice is a symbolic drum sound, mapped to a MIDI note by a DrumKit
type Voice int

const (
	Kick Voice = iota
	KickAlt
	Snare
	SnareAlt
	Rim
	Clap
	Tambourine
	Shaker
	ClosedHat
	OpenHat
	PedalHat
	LowTom
	Crash
	MidTom
	Ride
	HighTom
	CongaLow
	CongaHigh
	Cowbell
	Guiro
	Metal
	Chi
	numVoices
)

// DrumKit maps every voice to a MIDI note
type DrumKit struct {
	Name  string
	Notes [numVoices]uint8
}

// Note returns the MIDI note for a voice
func (k DrumKit) Note(v Voice) uint8 {
	if v < 0 || v >= numVoices {
		return k.Notes[Kick]
	}
	return k.Notes[v]
}

// IsKick reports whether a note is one of the kit's kick sounds
func (k DrumKit) IsKick(note uint8) bool {
	return note == k.Notes[Kick] || note == k.Notes[KickAlt]
}

// Kits contains all available drum kit mappings
var Kits = map[string]DrumKit{
	"opxy": {
		Name: "OP-XY drum sampler",
		Notes: [numVoices]uint8{
			53, // Kick
			54, // Kick alt
			55, // Snare
			56, // Snare alt
			57, // Rim
			58, // Clap
			59, // Tambourine
			60, // Shaker
			61, // Closed HH
			62, // Open HH
			63, // Pedal HH
			65, // Low Tom
			66, // Crash
			67, // Mid Tom
			68, // Ride
			69, // High Tom
			71, // Low Conga
			72, // High Conga
			73, // Cowbell
			74, // Guiro
			75, // Metal
			76, // Chi
		},
	},
	"gm": {
		Name: "General MIDI",
		Notes: [numVoices]uint8{
			36, // Kick
			35, // Kick alt
			38, // Snare
			40, // Snare alt
			37, // Rimshot
			39, // Clap
			54, // Tambourine
			70, // Maracas
			42, // Closed HH
			46, // Open HH
			44, // Pedal HH
			41, // Low Tom
			49, // Crash
			45, // Mid Tom
			51, // Ride
			48, // High Tom
			64, // Low Conga
			63, // High Conga
			56, // Cowbell
			73, // Short Guiro
			80, // Mute Triangle
			81, // Open Triangle
		},
	},
}

// DefaultKit is the default kit name
const DefaultKit = "opxy"

// KitNames returns the list of available kit names
func KitNames() []string {
	return []string{"opxy", "gm"}
}

// GetKit returns a kit by name, defaulting to DefaultKit if not found
func GetKit(name string) DrumKit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}
