// Package cpu implements the Intel 8080 microprocessor: fetch, decode,
// and execute, flag computation, cycle accounting, port-mapped I/O,
// host-driven interrupts, and an optional CP/M BDOS trap for running
// classic test ROMs.
package cpu

import (
	"time"

	"i8080/devices"
	"i8080/mem"
)

// RunState is the CPU's run/halt state.
type RunState int

const (
	Running RunState = iota
	Stopped
)

// HzNominal is the 8080's nominal clock rate, a value for RunRealtime's
// hz argument; Execute itself is not tied to any clock.
const HzNominal = 2_000_000

// Cpu is a single 8080 instance: its register file, its 64 KiB address
// space, its 256+256 port table, and its interrupt/run state. A Cpu
// owns all of this for its lifetime; there is no shared or global
// state, and nothing here is safe for concurrent use from more than
// one goroutine at a time (spec's single-threaded, cooperative model).
type Cpu struct {
	Registers

	Memory *mem.Memory

	// InterruptsEnabled mirrors the 8080's interrupt-enable
	// flip-flop. EI sets it, DI clears it, and RequestInterrupt is a
	// no-op while it's clear. Exported because a host needs to
	// inspect it (e.g. to decide whether it's worth queueing an
	// interrupt at all).
	InterruptsEnabled bool

	State RunState

	inputs  [256]devices.InputDevice
	outputs [256]devices.OutputDevice

	pendingInterrupt *byte // RST vector requested by the host, if any

	cpmCompatible bool
	printer       devices.Printer
}

// New constructs a Cpu with rom loaded at address 0, all registers and
// flags zeroed, and interrupts enabled. Flags start false: real 8080
// hardware leaves them undefined at reset, and this implementation
// picks a defined zero value rather than the all-true convention an
// earlier prototype used (see DESIGN.md).
func New(rom []byte) *Cpu {
	return &Cpu{
		Memory:            mem.New(rom),
		InterruptsEnabled: true,
		State:             Running,
	}
}

// NewCPMCompatible builds a Cpu in CP/M-compatible mode: CALL 0x0005 is
// intercepted per the BDOS console trap (see Execute and traps.go),
// writing through printer.
func NewCPMCompatible(rom []byte, printer devices.Printer) *Cpu {
	c := New(rom)
	c.cpmCompatible = true
	c.printer = printer
	return c
}

// AddInputDevice binds dev to input port.
func (c *Cpu) AddInputDevice(port byte, dev devices.InputDevice) {
	c.inputs[port] = dev
}

// AddOutputDevice binds dev to output port.
func (c *Cpu) AddOutputDevice(port byte, dev devices.OutputDevice) {
	c.outputs[port] = dev
}

// IsDone reports whether the program counter has run off the end of
// the loaded ROM image.
func (c *Cpu) IsDone(romLen int) bool {
	return int(c.PC) >= romLen
}

// RequestInterrupt asks the CPU to run RST vector as the next
// instruction instead of fetching from PC. It has no effect if
// InterruptsEnabled is false, in which case the request is silently
// dropped — there is no queue, and a second call before the next
// Execute overwrites the first. vector is expected to be 0..7 (spec's
// arcade host alternates between 1 and 2 for mid-screen/full-screen).
func (c *Cpu) RequestInterrupt(vector byte) {
	if !c.InterruptsEnabled {
		return
	}
	v := vector
	c.pendingInterrupt = &v
}

// Execute runs exactly one instruction: either a pending host
// interrupt (synthesized as RST vector) or the next instruction at PC,
// and returns the number of T-states it consumed.
func (c *Cpu) Execute() (uint8, error) {
	if c.pendingInterrupt != nil {
		vector := *c.pendingInterrupt
		c.pendingInterrupt = nil
		c.State = Running // the only transition out of Stopped
		instr := Instruction{Op: OpRST, RST: vector}
		cycles, err := CyclesFor(instr, c.Flags)
		if err != nil {
			return 0, err
		}
		if err := c.ExecuteInstruction(instr); err != nil {
			return 0, err
		}
		return cycles, nil
	}

	if c.cpmCompatible && c.atBDOSCall() {
		return c.executeBDOSTrap()
	}

	if c.cpmCompatible && c.atJMPZero() {
		c.State = Stopped
		return 10, nil
	}

	pc := c.PC
	window := c.fetchWindow(pc)
	instr, size := Decode(window)

	flagsAtIssue := c.Flags
	cycles, err := CyclesFor(instr, flagsAtIssue)
	if err != nil {
		return 0, err
	}

	c.PC = pc + uint16(size)
	if err := c.ExecuteInstruction(instr); err != nil {
		return 0, err
	}
	return cycles, nil
}

// fetchWindow returns up to 3 bytes starting at addr, padding with
// zeroes at the top of the address space rather than panicking.
func (c *Cpu) fetchWindow(addr uint16) []byte {
	window := make([]byte, 3)
	for i := range window {
		a := int(addr) + i
		if a < len(c.Memory.Bytes) {
			window[i] = c.Memory.Bytes[a]
		}
	}
	return window
}

// RunRealtime calls Execute in a loop, pacing itself against hz (use
// HzNominal for the 8080's native rate) until stop is closed or the
// CPU halts. It's a convenience for hosts that don't want to write
// their own pacer; Execute remains the primitive every host can call
// directly, and nothing here is required to use the rest of this
// package. Adapted from the teacher's own tick/loop pair.
func (c *Cpu) RunRealtime(hz int64, stop <-chan struct{}) error {
	tick := time.Duration(1e9 / hz)
	for {
		select {
		case <-stop:
			return nil
		default:
		}
		if c.State == Stopped && c.pendingInterrupt == nil {
			return nil
		}
		cycles, err := c.Execute()
		if err != nil {
			return err
		}
		time.Sleep(tick * time.Duration(cycles))
	}
}
