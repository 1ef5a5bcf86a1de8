package cpu

// call pushes the return address (the already-advanced PC) and jumps
// to target. Shared by CALL, the conditional call variants, and RST.
func (c *Cpu) call(target uint16) {
	c.SP -= 2
	c.Memory.WriteWord(c.SP, c.PC)
	c.PC = target
}

// ret pops a return address off the stack into PC. Shared by RET and
// the conditional return variants.
func (c *Cpu) ret() {
	c.PC = c.Memory.ReadWord(c.SP)
	c.SP += 2
}

// push stores pair onto the stack. PairPSW packs A and the flags byte
// the way POP PSW expects to find them; any pair other than BC, DE, HL,
// or PSW is a decode/caller bug.
func (c *Cpu) push(pair RegPair) error {
	var v uint16
	switch pair {
	case PairBC:
		v = c.BC()
	case PairDE:
		v = c.DE()
	case PairHL:
		v = c.HL()
	case PairPSW:
		v = c.PSW()
	default:
		return InvalidRegisterArgument{Pair: pair}
	}
	c.SP -= 2
	c.Memory.WriteWord(c.SP, v)
	return nil
}

// pop loads pair from the stack, the inverse of push.
func (c *Cpu) pop(pair RegPair) error {
	v := c.Memory.ReadWord(c.SP)
	switch pair {
	case PairBC:
		c.SetBC(v)
	case PairDE:
		c.SetDE(v)
	case PairHL:
		c.SetHL(v)
	case PairPSW:
		c.SetPSW(v)
	default:
		return InvalidRegisterArgument{Pair: pair}
	}
	c.SP += 2
	return nil
}
