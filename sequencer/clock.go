package sequencer

// MIDI clock runs at 24 pulses per quarter note; a step is a 16th
const (
	PPQN          = 24
	PulsesPerStep = PPQN / 4
)

// DefaultCycle is the loop length used when no track has a pattern
const DefaultCycle = 32

// Clock divides incoming MIDI clock pulses into step ticks
type Clock struct {
	running bool
	pulses  int
	step    int
}

// Start resets the pulse counter and begins counting
func (c *Clock) Start() {
	c.running = true
	c.pulses = 0
	c.step = 0
}

// Stop halts counting, keeping the position for Continue
func (c *Clock) Stop() {
	c.running = false
}

// Continue resumes from the current position
func (c *Clock) Continue() {
	c.running = true
}

// Pulse counts one clock pulse. Every PulsesPerStep pulses it returns the
// new global step (1-based). When the step reaches cycle the counter
// restarts, so the following step is 1 again. Pulses while stopped are
// ignored.
func (c *Clock) Pulse(cycle int) (step int, ok bool) {
	if !c.running {
		return 0, false
	}
	c.pulses++
	if c.pulses%PulsesPerStep != 0 {
		return 0, false
	}
	step = c.pulses / PulsesPerStep
	if cycle > 0 && step >= cycle {
		c.pulses = 0
	}
	c.step = step
	return step, true
}

func (c *Clock) Running() bool { return c.running }

// Step returns the last emitted global step, 0 before the first one
func (c *Clock) Step() int { return c.step }

func (c *Clock) Pulses() int { return c.pulses }
