package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"i8080/devices"
)

func runAll(t *testing.T, c *Cpu, steps int) uint32 {
	t.Helper()
	var total uint32
	for i := 0; i < steps; i++ {
		cycles, err := c.Execute()
		assert.NoError(t, err)
		total += uint32(cycles)
	}
	return total
}

func TestMVIAndADD(t *testing.T) {
	c := New([]byte{0x3e, 0x07, 0x06, 0x05, 0x80, 0x76})
	cycles := runAll(t, c, 4)
	assert.Equal(t, byte(0x0c), c.A)
	assert.Equal(t, byte(0x05), c.B)
	assert.Equal(t, Stopped, c.State)
	assert.Equal(t, uint32(25), cycles)
}

func TestLXIAndDAD(t *testing.T) {
	c := New([]byte{0x21, 0x34, 0x12, 0x01, 0x02, 0x00, 0x09, 0x76})
	runAll(t, c, 3)
	assert.Equal(t, uint16(0x1236), c.HL())
	assert.Equal(t, uint16(0x0002), c.BC())
	assert.Equal(t, byte(0x12), c.H)
	assert.Equal(t, byte(0x36), c.L)
	assert.False(t, c.Flags.Carry)
}

func TestCallAndReturn(t *testing.T) {
	rom := []byte{0xcd, 0x06, 0x00, 0x76, 0x00, 0x00, 0xc9}
	c := New(rom)
	c.SP = 0x1000

	_, err := c.Execute() // CALL 0x0006
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0006), c.PC)
	assert.Equal(t, uint16(0x1000-2), c.SP)

	_, err = c.Execute() // RET
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0003), c.PC)
	assert.Equal(t, uint16(0x1000), c.SP)

	_, err = c.Execute() // HLT
	assert.NoError(t, err)
	assert.Equal(t, Stopped, c.State)
}

func TestConditionalJump(t *testing.T) {
	rom := []byte{0x3e, 0x00, 0xfe, 0x00, 0xca, 0x09, 0x00, 0x76, 0x00, 0x3e, 0x42, 0x76}
	c := New(rom)
	runAll(t, c, 5)
	assert.Equal(t, byte(0x42), c.A)
	assert.Equal(t, Stopped, c.State)
}

func TestPortIO(t *testing.T) {
	rom := []byte{0xdb, 0x01, 0xd3, 0x02, 0x76}
	c := New(rom)
	c.AddInputDevice(1, devices.ConstantInput{Value: 0x55})
	var capture devices.RecordingOutput
	c.AddOutputDevice(2, &capture)

	runAll(t, c, 3)
	assert.Equal(t, byte(0x55), c.A)
	assert.Equal(t, byte(0x55), capture.Last())
}

func TestInterruptInjection(t *testing.T) {
	c := New(nil)
	c.SP = 0x2000
	c.PC = 0x0100
	c.InterruptsEnabled = true

	c.RequestInterrupt(2)
	_, err := c.Execute()
	assert.NoError(t, err)

	assert.Equal(t, uint16(0x0010), c.PC)
	assert.Equal(t, byte(0x00), c.Memory.Read(0x1FFE))
	assert.Equal(t, byte(0x01), c.Memory.Read(0x1FFF))
}

func TestInterruptGatedByDI(t *testing.T) {
	c := New(nil)
	c.InterruptsEnabled = false
	c.RequestInterrupt(1)

	pcBefore := c.PC
	_, err := c.Execute()
	assert.NoError(t, err)
	assert.Equal(t, pcBefore+1, c.PC) // fell through to ordinary NOP fetch
}

func TestPushPopRoundTrip(t *testing.T) {
	c := New(nil)
	c.SP = 0x2000
	c.A = 0xAB
	c.Flags = Flags{Zero: true, Carry: true}

	assert.NoError(t, c.push(PairPSW))
	c.A = 0
	c.Flags = Flags{}
	assert.NoError(t, c.pop(PairPSW))

	assert.Equal(t, byte(0xAB), c.A)
	assert.True(t, c.Flags.Zero)
	assert.True(t, c.Flags.Carry)
	assert.Equal(t, uint16(0x2000), c.SP)
}

func TestPushPopInvalidPair(t *testing.T) {
	c := New(nil)
	c.SP = 0x2000
	assert.Error(t, c.push(RegPair(99)))
	assert.Error(t, c.pop(RegPair(99)))
}

func TestADDFlags(t *testing.T) {
	c := New(nil)
	c.A = 0xFF
	c.B = 0x01
	c.applyALU(ALUAdd, c.B)
	assert.Equal(t, byte(0x00), c.A)
	assert.True(t, c.Flags.Zero)
	assert.True(t, c.Flags.Carry)
	assert.True(t, c.Flags.AuxCarry)
	assert.False(t, c.Flags.Sign)
}

func TestDecodeRoundTripsThroughSize(t *testing.T) {
	rom := []byte{0x3e, 0x07, 0x06, 0x05, 0x80, 0x76}
	pc := 0
	for pc < len(rom) {
		_, size := Decode(rom[pc:])
		assert.Positive(t, size)
		pc += size
	}
	assert.Equal(t, len(rom), pc)
}

func TestCPMTrapPrintsString(t *testing.T) {
	rom := make([]byte, 0x20)
	// CALL 0x0005 at 0x0000
	rom[0] = 0xcd
	rom[1] = 0x05
	rom[2] = 0x00
	// HLT right after, in case the trap falls through instead of
	// advancing PC itself
	rom[3] = 0x76
	copy(rom[0x10:], []byte("hi$"))

	var printer devices.BufferPrinter
	c := NewCPMCompatible(rom, &printer)
	c.C = 9
	c.SetDE(0x0010)

	_, err := c.Execute()
	assert.NoError(t, err)
	assert.Equal(t, "hi", printer.String())
	assert.Equal(t, uint16(0x0003), c.PC)
}

func TestCPMTrapHaltsOnJMPZero(t *testing.T) {
	rom := []byte{0xc3, 0x00, 0x00} // JMP 0x0000
	var printer devices.BufferPrinter
	c := NewCPMCompatible(rom, &printer)

	_, err := c.Execute()
	assert.NoError(t, err)
	assert.Equal(t, Stopped, c.State)
}

func TestInterruptWakesHaltedCPU(t *testing.T) {
	c := New([]byte{0x76}) // HLT
	c.SP = 0x2000
	c.InterruptsEnabled = true

	_, err := c.Execute()
	assert.NoError(t, err)
	assert.Equal(t, Stopped, c.State)

	c.RequestInterrupt(2)
	_, err = c.Execute()
	assert.NoError(t, err)
	assert.Equal(t, Running, c.State)
	assert.Equal(t, uint16(0x0010), c.PC)
}

func TestANAClearsAuxCarryRegardlessOfNibble(t *testing.T) {
	c := New(nil)
	c.A = 0x0F
	c.B = 0x0F // a|b has bit 3 set, but ANA must still clear AuxCarry
	c.applyALU(ALUAna, c.B)
	assert.Equal(t, byte(0x0F), c.A)
	assert.False(t, c.Flags.AuxCarry)
	assert.False(t, c.Flags.Carry)
}
