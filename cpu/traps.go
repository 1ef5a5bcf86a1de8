package cpu

// atBDOSCall reports whether the instruction at PC is a CALL to
// 0x0005, the BDOS entry point classic CP/M test ROMs use for console
// output.
func (c *Cpu) atBDOSCall() bool {
	return c.Memory.Read(c.PC) == 0xCD && c.Memory.ReadWord(c.PC+1) == 0x0005
}

// atJMPZero reports whether the instruction at PC is a JMP to 0x0000,
// the CP/M convention a test ROM uses to signal it has finished.
func (c *Cpu) atJMPZero() bool {
	return c.Memory.Read(c.PC) == 0xC3 && c.Memory.ReadWord(c.PC+1) == 0x0000
}

// executeBDOSTrap emulates just enough of the CP/M BDOS to satisfy the
// two console functions test ROMs rely on: function 9 prints a
// '$'-terminated string at DE, function 2 prints the single byte in E.
// Anything else in C is treated as an immediate return, matching a
// BDOS call that does nothing visible.
func (c *Cpu) executeBDOSTrap() (uint8, error) {
	switch c.C {
	case 9:
		addr := c.DE()
		var out []byte
		for {
			b := c.Memory.Read(addr)
			if b == '$' {
				break
			}
			out = append(out, b)
			addr++
		}
		c.printer.Print(out)
	case 2:
		c.printer.Print([]byte{c.E})
	}

	// CALL 0x0005 is always 3 bytes; behave as if it executed and
	// returned immediately, without ever touching the real stack.
	c.PC += 3
	return 17, nil
}
