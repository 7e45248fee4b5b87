package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-genseq/config"
	"go-genseq/debug"
	"go-genseq/generate"
	"go-genseq/midi"
	"go-genseq/pattern"
	"go-genseq/sequencer"
	"go-genseq/theme"
	"go-genseq/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (.json or .yml); default ~/.config/go-genseq/config.*")
	inPort := flag.String("in", "", "MIDI clock input port, overrides the config")
	outPort := flag.String("out", "", "MIDI output port, overrides the config")
	list := flag.Bool("list", false, "list MIDI ports and exit")
	debugLog := flag.Bool("debug", false, "write ~/.config/go-genseq/debug.log")
	seed := flag.Int64("seed", 0, "random seed, overrides the config; 0 seeds from the time")
	save := flag.Bool("save", false, "write the effective config (file + flags) back and exit")
	flag.Parse()

	defer midi.CloseDriver()

	if *list {
		listPorts()
		return
	}

	if *debugLog {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *inPort != "" {
		cfg.Ports.ClockInput = *inPort
	}
	if *outPort != "" {
		cfg.Ports.Output = *outPort
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *save {
		if err := saveConfig(cfg, *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "save config: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	debug.Log("main", "seed %d", cfg.Seed)

	// Generation state
	state := sequencer.NewState(generate.New(generate.NewRand(cfg.Seed)))
	applyChannels(state, cfg.Channels)
	for _, p := range cfg.Params() {
		state.SetParams(p)
	}
	song, err := cfg.SongSettings()
	if err != nil {
		debug.Warn("song settings: %v", err)
	}
	state.SetSong(song)
	state.RegenerateAll()

	// Output falls back to a silent sink so the TUI still runs
	out, err := midi.OpenOutput(cfg.Ports.Output)
	if err != nil {
		debug.Warn("output: %v", err)
		fmt.Fprintf(os.Stderr, "no MIDI output (%v), notes are dropped\n", err)
		out = midi.NewOutput("none", nil)
	}
	debug.Log("main", "output %s", out.Name())

	manager := sequencer.NewManager(state, out)
	manager.FlushOnStop = cfg.FlushOnStop

	// Clock input reconnects on hot-plug
	deviceMgr := midi.NewDeviceManager(cfg.Ports.ClockInput, manager)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		deviceMgr.Run(ctx)
		close(done)
	}()

	var palette *theme.Palette
	if cfg.UI.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.UI.Palette); err != nil {
			debug.Warn("palette: %v", err)
		}
	}

	m := tui.NewModel(manager, deviceMgr, theme.New(palette))
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()

	// detach the clock before the last messages so no tick races them
	cancel()
	<-done
	manager.Panic()
	if err := out.Panic(); err != nil {
		debug.Warn("panic on exit: %v", err)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "" {
		return cfg.Save()
	}
	return cfg.SaveFile(path)
}

// applyChannels routes tracks and note tags to the configured channels;
// zero keeps the built-in default
func applyChannels(state *sequencer.State, ch config.ChannelsConfig) {
	state.Track(pattern.Drums).Channel = ch.Drums
	state.Track(pattern.Bass).Channel = ch.Bass
	state.Track(pattern.Chords).Channel = ch.Chords
	state.Track(pattern.Melody).Channel = ch.Melody

	setTag := func(r pattern.Role, tag pattern.Tag, v uint8) {
		if v != 0 {
			state.Track(r).TagChannels[tag] = v
		}
	}
	setTag(pattern.Chords, pattern.TagExtension, ch.Extensions)
	setTag(pattern.Chords, pattern.TagDrone, ch.Drones)
	setTag(pattern.Melody, pattern.TagResponse, ch.Response)
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")
	ins, outs := midi.ListPorts()
	for i, name := range ins {
		fmt.Printf("  [%d] %s\n", i, name)
	}
	fmt.Println("=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  [%d] %s\n", i, name)
	}
}
