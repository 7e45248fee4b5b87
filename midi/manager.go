package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-genseq/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// Port enumeration can hang on some systems; give up after this long
const portScanTimeout = 3 * time.Second

// DeviceEvent is emitted when the clock source connects/disconnects
type DeviceEvent struct {
	Type DeviceEventType
	ID   string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// DeviceManager keeps a clock input attached to the configured port,
// reconnecting when the device is unplugged and plugged back in
type DeviceManager struct {
	portName  string
	transport Transport

	input    *ClockInput
	mu       sync.RWMutex
	events   chan DeviceEvent
	pollRate time.Duration
}

// NewDeviceManager watches for an input port whose name contains portName.
// An empty portName takes the first input port.
func NewDeviceManager(portName string, t Transport) *DeviceManager {
	return &DeviceManager{
		portName:  portName,
		transport: t,
		events:    make(chan DeviceEvent, 16),
		pollRate:  time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Connected returns the name of the current clock input, "" if none
func (dm *DeviceManager) Connected() string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	if dm.input == nil {
		return ""
	}
	return dm.input.ID()
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.close()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	ins, _, ok := scanPorts(portScanTimeout)
	if !ok {
		return
	}

	var found drivers.In
	for _, in := range ins {
		if dm.portName == "" || matchPort(in.String(), dm.portName) {
			found = in
			break
		}
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.input != nil {
		if found != nil && found.String() == dm.input.ID() {
			return
		}
		id := dm.input.ID()
		dm.input.Close()
		dm.input = nil
		// the clock is gone; stop so nothing is left hanging
		dm.transport.Stop()
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
	if found == nil {
		return
	}

	ci, err := NewClockInput(found.String(), found, dm.transport)
	if err != nil {
		debug.Log("midi-in", "connect %s: %v", found.String(), err)
		return
	}
	dm.input = ci
	dm.emit(DeviceEvent{Type: DeviceConnected, ID: ci.ID()})
}

func (dm *DeviceManager) emit(e DeviceEvent) {
	debug.Log("midi-in", "%s %s", e.ID, e.Type)
	select {
	case dm.events <- e:
	default:
	}
}

func (dm *DeviceManager) close() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.input != nil {
		dm.input.Close()
		dm.input = nil
	}
}

// scanPorts lists ports in the background so a hung MIDI service cannot
// block the caller. ok is false on timeout.
func scanPorts(timeout time.Duration) (ins []drivers.In, outs []drivers.Out, ok bool) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, true
	case <-time.After(timeout):
		debug.Warn("midi port scan timed out after %s", timeout)
		return nil, nil, false
	}
}

// ListPorts returns the names of all input and output ports
func ListPorts() (ins, outs []string) {
	inPorts, outPorts, _ := scanPorts(portScanTimeout)
	for _, p := range inPorts {
		ins = append(ins, p.String())
	}
	for _, p := range outPorts {
		outs = append(outs, p.String())
	}
	return ins, outs
}

// matchPort reports whether a port name contains want, ignoring case
func matchPort(name, want string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(want)))
}

// CloseDriver releases the MIDI driver
func CloseDriver() {
	gomidi.CloseDriver()
}
