package cpu

import "i8080/mask"

// ExecuteInstruction applies instr's semantics to c: it does not fetch,
// decode, advance PC for the instruction it's given (the caller already
// did, or is synthesizing an interrupt/trap), or charge cycles — it
// only mutates registers, memory, flags, and run state. This is the
// seam used to inject RST vectors for interrupts without going through
// Decode. The CP/M BDOS trap is handled in Execute, not here: a CALL
// 0x0005 passed to ExecuteInstruction runs as an ordinary CALL.
func (c *Cpu) ExecuteInstruction(instr Instruction) error {
	switch instr.Op {
	case OpNOP:
		// nothing

	case OpHLT:
		c.State = Stopped

	case OpMOVRR:
		if instr.Dst == RegM && instr.Src == RegM {
			return InvalidMemoryAccess{}
		}
		c.setReg(instr.Dst, c.getReg(instr.Src))

	case OpMVI:
		c.setReg(instr.Dst, instr.Imm8)

	case OpLXI:
		c.setPair(instr.Pair, instr.Imm16)

	case OpLDA:
		c.A = c.Memory.Read(instr.Imm16)

	case OpSTA:
		c.Memory.Write(instr.Imm16, c.A)

	case OpLHLD:
		c.SetHL(c.Memory.ReadWord(instr.Imm16))

	case OpSHLD:
		c.Memory.WriteWord(instr.Imm16, c.HL())

	case OpLDAX:
		c.A = c.Memory.Read(c.pairValue(instr.Pair))

	case OpSTAX:
		c.Memory.Write(c.pairValue(instr.Pair), c.A)

	case OpXCHG:
		c.H, c.L, c.D, c.E = c.D, c.E, c.H, c.L

	case OpALU:
		c.applyALU(instr.ALUOp, c.getReg(instr.Src))

	case OpALUImm:
		c.applyALU(instr.ALUOp, instr.Imm8)

	case OpINR:
		c.setReg(instr.Dst, c.incDec(c.getReg(instr.Dst), 1))

	case OpDCR:
		c.setReg(instr.Dst, c.incDec(c.getReg(instr.Dst), -1))

	case OpINX:
		c.setPair(instr.Pair, c.pairValue(instr.Pair)+1)

	case OpDCX:
		c.setPair(instr.Pair, c.pairValue(instr.Pair)-1)

	case OpDAD:
		c.dad(instr.Pair)

	case OpDAA:
		c.daa()

	case OpRLC:
		c.rlc()
	case OpRRC:
		c.rrc()
	case OpRAL:
		c.ral()
	case OpRAR:
		c.rar()

	case OpCMA:
		c.A = ^c.A
	case OpCMC:
		c.Flags.Carry = !c.Flags.Carry
	case OpSTC:
		c.Flags.Carry = true

	case OpJMP:
		c.PC = instr.Imm16
	case OpJCOND:
		if instr.Cond.Satisfied(c.Flags) {
			c.PC = instr.Imm16
		}

	case OpCALL:
		c.call(instr.Imm16)
	case OpCCOND:
		if instr.Cond.Satisfied(c.Flags) {
			c.call(instr.Imm16)
		}

	case OpRET:
		c.ret()
	case OpRCOND:
		if instr.Cond.Satisfied(c.Flags) {
			c.ret()
		}

	case OpRST:
		c.call(uint16(instr.RST) * 8)

	case OpPCHL:
		c.PC = c.HL()

	case OpPUSH:
		return c.push(instr.Pair)
	case OpPOP:
		return c.pop(instr.Pair)

	case OpXTHL:
		top := c.Memory.ReadWord(c.SP)
		c.Memory.WriteWord(c.SP, c.HL())
		c.SetHL(top)

	case OpSPHL:
		c.SP = c.HL()

	case OpIN:
		dev := c.inputs[instr.Imm8]
		if dev == nil {
			return InputDeviceNotConfigured{Port: instr.Imm8}
		}
		c.A = dev.Read()

	case OpOUT:
		dev := c.outputs[instr.Imm8]
		if dev == nil {
			return OutputDeviceNotConfigured{Port: instr.Imm8}
		}
		dev.Write(c.A)

	case OpEI:
		c.InterruptsEnabled = true
	case OpDI:
		c.InterruptsEnabled = false
	}
	return nil
}

func (c *Cpu) getReg(r Reg) byte {
	switch r {
	case RegA:
		return c.A
	case RegB:
		return c.B
	case RegC:
		return c.C
	case RegD:
		return c.D
	case RegE:
		return c.E
	case RegH:
		return c.H
	case RegL:
		return c.L
	default: // RegM
		return c.Memory.Read(c.HL())
	}
}

func (c *Cpu) setReg(r Reg, v byte) {
	switch r {
	case RegA:
		c.A = v
	case RegB:
		c.B = v
	case RegC:
		c.C = v
	case RegD:
		c.D = v
	case RegE:
		c.E = v
	case RegH:
		c.H = v
	case RegL:
		c.L = v
	default: // RegM
		c.Memory.Write(c.HL(), v)
	}
}

func (c *Cpu) pairValue(p RegPair) uint16 {
	switch p {
	case PairBC:
		return c.BC()
	case PairDE:
		return c.DE()
	case PairHL:
		return c.HL()
	default: // PairSP
		return c.SP
	}
}

func (c *Cpu) setPair(p RegPair, v uint16) {
	switch p {
	case PairBC:
		c.SetBC(v)
	case PairDE:
		c.SetDE(v)
	case PairHL:
		c.SetHL(v)
	default: // PairSP
		c.SP = v
	}
}

// applyALU performs the arithmetic/logical op against A and operand,
// storing the result in A (except CMP, which only sets flags) and
// updating all five flags.
func (c *Cpu) applyALU(op ALUOp, operand byte) {
	a := c.A
	var result byte
	var carryOut, auxOut bool

	switch op {
	case ALUAdd, ALUAdc:
		carryIn := 0
		if op == ALUAdc && c.Flags.Carry {
			carryIn = 1
		}
		sum := int(a) + int(operand) + carryIn
		result = byte(sum)
		carryOut = sum > 0xFF
		auxOut = (a&0xF)+(operand&0xF)+byte(carryIn) > 0xF

	case ALUSub, ALUSbb:
		borrowIn := 0
		if op == ALUSbb && c.Flags.Carry {
			borrowIn = 1
		}
		diff := int(a) - int(operand) - borrowIn
		result = byte(diff)
		carryOut = diff < 0
		auxOut = int(a&0xF)-int(operand&0xF)-borrowIn < 0

	case ALUAna:
		result = a & operand
		auxOut = false
		carryOut = false

	case ALUXra:
		result = a ^ operand
		carryOut = false
		auxOut = false

	case ALUOra:
		result = a | operand
		carryOut = false
		auxOut = false

	case ALUCmp:
		diff := int(a) - int(operand)
		result = byte(diff)
		carryOut = diff < 0
		auxOut = int(a&0xF)-int(operand&0xF) < 0
	}

	c.setZSP(result)
	c.Flags.Carry = carryOut
	c.Flags.AuxCarry = auxOut

	if op != ALUCmp {
		c.A = result
	}
}

// incDec implements INR/DCR: delta is +1 or -1. Unlike ALU add/sub,
// INR/DCR never touch the carry flag.
func (c *Cpu) incDec(v byte, delta int) byte {
	result := byte(int(v) + delta)
	c.setZSP(result)
	if delta > 0 {
		c.Flags.AuxCarry = v&0xF == 0xF
	} else {
		c.Flags.AuxCarry = v&0xF != 0x0
	}
	return result
}

// setZSP updates Zero, Sign, and Parity from result. Carry and
// AuxCarry are each operation's own responsibility.
func (c *Cpu) setZSP(result byte) {
	c.Flags.Zero = result == 0
	c.Flags.Sign = result&0x80 != 0
	c.Flags.Parity = mask.EvenParity(result)
}

// dad adds pair into HL, touching only Carry (no other flag).
func (c *Cpu) dad(p RegPair) {
	sum := uint32(c.HL()) + uint32(c.pairValue(p))
	c.SetHL(uint16(sum))
	c.Flags.Carry = sum > 0xFFFF
}

// daa adjusts A for BCD after an addition, per the 8080's documented
// four-case table.
func (c *Cpu) daa() {
	a := c.A
	correction := byte(0)
	carry := c.Flags.Carry

	if c.Flags.AuxCarry || a&0x0F > 9 {
		correction |= 0x06
	}
	if carry || a>>4 > 9 || (a>>4 == 9 && a&0x0F > 9) {
		correction |= 0x60
		carry = true
	}

	auxOut := (a&0x0F)+(correction&0x0F) > 0x0F
	a += correction

	c.A = a
	c.setZSP(a)
	c.Flags.AuxCarry = auxOut
	c.Flags.Carry = carry
}

func (c *Cpu) rlc() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | boolBit(carry)
	c.Flags.Carry = carry
}

func (c *Cpu) rrc() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | boolBit(carry)<<7
	c.Flags.Carry = carry
}

func (c *Cpu) ral() {
	carryIn := c.Flags.Carry
	carryOut := c.A&0x80 != 0
	c.A = c.A<<1 | boolBit(carryIn)
	c.Flags.Carry = carryOut
}

func (c *Cpu) rar() {
	carryIn := c.Flags.Carry
	carryOut := c.A&0x01 != 0
	c.A = c.A>>1 | boolBit(carryIn)<<7
	c.Flags.Carry = carryOut
}

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
