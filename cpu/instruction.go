package cpu

// Reg names an 8-bit operand location: one of the seven general
// registers, or M for the byte addressed indirectly through HL.
type Reg int

const (
	RegB Reg = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegM // (HL)
	RegA
)

// the 8080 encodes a register operand in 3 bits in exactly this order
var regByBits = [8]Reg{RegB, RegC, RegD, RegE, RegH, RegL, RegM, RegA}

// RegPair names a 16-bit register pair operand.
type RegPair int

const (
	PairBC RegPair = iota
	PairDE
	PairHL
	PairSP  // LXI/INX/DCX/DAD
	PairPSW // PUSH/POP only, in place of SP
)

var pairByBits = [4]RegPair{PairBC, PairDE, PairHL, PairSP}
var pushPopPairByBits = [4]RegPair{PairBC, PairDE, PairHL, PairPSW}

// Condition names one of the eight flag predicates a conditional
// branch, call, or return tests.
type Condition int

const (
	CondNZ Condition = iota
	CondZ
	CondNC
	CondC
	CondPO
	CondPE
	CondP
	CondM
)

var condByBits = [8]Condition{CondNZ, CondZ, CondNC, CondC, CondPO, CondPE, CondP, CondM}

// Satisfied reports whether cond holds given the current flags.
func (cond Condition) Satisfied(f Flags) bool {
	switch cond {
	case CondNZ:
		return !f.Zero
	case CondZ:
		return f.Zero
	case CondNC:
		return !f.Carry
	case CondC:
		return f.Carry
	case CondPO:
		return !f.Parity
	case CondPE:
		return f.Parity
	case CondP:
		return !f.Sign
	case CondM:
		return f.Sign
	}
	return false
}

// Op tags which 8080 instruction an Instruction value represents. The
// operand payload it carries depends on Op; see Instruction's field
// comments.
type Op int

const (
	OpNOP Op = iota
	OpHLT

	OpMOVRR // Dst, Src: register-to-register, or through RegM for (HL)
	OpMVI   // Dst, Imm8
	OpLXI   // Pair, Imm16
	OpLDA   // Imm16
	OpSTA   // Imm16
	OpLHLD  // Imm16
	OpSHLD  // Imm16
	OpLDAX  // Pair (BC or DE)
	OpSTAX  // Pair (BC or DE)
	OpXCHG

	OpALU // Dst unused; ALUOp selects the operation; Src is the operand reg
	OpALUImm // ALUOp selects the operation; Imm8 is the operand

	OpINR  // Dst
	OpDCR  // Dst
	OpINX  // Pair
	OpDCX  // Pair
	OpDAD  // Pair
	OpDAA
	OpRLC
	OpRRC
	OpRAL
	OpRAR
	OpCMA
	OpCMC
	OpSTC

	OpJMP   // Imm16
	OpJCOND // Cond, Imm16
	OpCALL  // Imm16
	OpCCOND // Cond, Imm16
	OpRET
	OpRCOND // Cond
	OpRST   // RST (0..7)
	OpPCHL

	OpPUSH // Pair (BC, DE, HL, or PSW)
	OpPOP  // Pair (BC, DE, HL, or PSW)
	OpXTHL
	OpSPHL

	OpIN  // Imm8 (port)
	OpOUT // Imm8 (port)
	OpEI
	OpDI
)

// ALUOp selects which 8-bit accumulator operation OpALU/OpALUImm
// performs.
type ALUOp int

const (
	ALUAdd ALUOp = iota
	ALUAdc
	ALUSub
	ALUSbb
	ALUAna
	ALUXra
	ALUOra
	ALUCmp
)

var aluByBits = [8]ALUOp{ALUAdd, ALUAdc, ALUSub, ALUSbb, ALUAna, ALUXra, ALUOra, ALUCmp}

// Instruction is a decoded 8080 instruction: a tag plus whichever
// operand fields that tag uses. Unused fields are left at their zero
// value.
type Instruction struct {
	Op    Op
	Dst   Reg
	Src   Reg
	Pair  RegPair
	Cond  Condition
	ALUOp ALUOp
	Imm8  byte
	Imm16 uint16
	RST   byte
}

// Size reports how many bytes this instruction occupies in memory: 1
// for register-only and control instructions, 2 for those with an
// 8-bit immediate, 3 for those with a 16-bit immediate or address.
func (i Instruction) Size() int {
	switch i.Op {
	case OpMVI, OpALUImm, OpIN, OpOUT:
		return 2
	case OpLXI, OpLDA, OpSTA, OpLHLD, OpSHLD, OpJMP, OpJCOND, OpCALL, OpCCOND:
		return 3
	default:
		return 1
	}
}

func byteAt(b []byte, i int) byte {
	if i < len(b) {
		return b[i]
	}
	return 0
}

func word(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) }

// Decode reads 1 to 3 bytes from the front of b and returns the
// instruction they encode along with its size in bytes. b is expected
// to have at least as many bytes as the opcode demands; callers that
// cannot guarantee 3 bytes of lookahead should pad with zeroes, since
// reading past an opcode's real operands is never valid and is this
// function's precondition, not its concern. Bytes that do not belong
// to the documented 8080 opcode set decode to a 1-byte NOP.
func Decode(b []byte) (Instruction, int) {
	b0 := byteAt(b, 0)
	instr := decodeOne(b0, b)
	return instr, instr.Size()
}

func decodeOne(b0 byte, b []byte) Instruction {
	quadrant := b0 >> 6
	low3 := b0 & 0x07
	mid3 := (b0 >> 3) & 0x07

	switch quadrant {
	case 0:
		return decodeQuadrant0(b0, low3, mid3, b)
	case 1:
		return decodeQuadrant1(mid3, low3)
	case 2:
		return Instruction{Op: OpALU, ALUOp: aluByBits[mid3], Src: regByBits[low3]}
	default:
		return decodeQuadrant3(b0, low3, mid3, b)
	}
}

func decodeQuadrant0(b0, low3, mid3 byte, b []byte) Instruction {
	switch low3 {
	case 0:
		return Instruction{Op: OpNOP}
	case 1:
		rp := pairByBits[(b0>>4)&0x03]
		if b0&0x08 != 0 {
			return Instruction{Op: OpDAD, Pair: rp}
		}
		return Instruction{Op: OpLXI, Pair: rp, Imm16: word(byteAt(b, 2), byteAt(b, 1))}
	case 2:
		load := b0&0x08 != 0
		switch (b0 >> 4) & 0x03 {
		case 0:
			if load {
				return Instruction{Op: OpLDAX, Pair: PairBC}
			}
			return Instruction{Op: OpSTAX, Pair: PairBC}
		case 1:
			if load {
				return Instruction{Op: OpLDAX, Pair: PairDE}
			}
			return Instruction{Op: OpSTAX, Pair: PairDE}
		case 2:
			if load {
				return Instruction{Op: OpLHLD, Imm16: word(byteAt(b, 2), byteAt(b, 1))}
			}
			return Instruction{Op: OpSHLD, Imm16: word(byteAt(b, 2), byteAt(b, 1))}
		default:
			if load {
				return Instruction{Op: OpLDA, Imm16: word(byteAt(b, 2), byteAt(b, 1))}
			}
			return Instruction{Op: OpSTA, Imm16: word(byteAt(b, 2), byteAt(b, 1))}
		}
	case 3:
		rp := pairByBits[(b0>>4)&0x03]
		if b0&0x08 != 0 {
			return Instruction{Op: OpDCX, Pair: rp}
		}
		return Instruction{Op: OpINX, Pair: rp}
	case 4:
		return Instruction{Op: OpINR, Dst: regByBits[mid3]}
	case 5:
		return Instruction{Op: OpDCR, Dst: regByBits[mid3]}
	case 6:
		return Instruction{Op: OpMVI, Dst: regByBits[mid3], Imm8: byteAt(b, 1)}
	default: // 7
		switch mid3 {
		case 0:
			return Instruction{Op: OpRLC}
		case 1:
			return Instruction{Op: OpRRC}
		case 2:
			return Instruction{Op: OpRAL}
		case 3:
			return Instruction{Op: OpRAR}
		case 4:
			return Instruction{Op: OpDAA}
		case 5:
			return Instruction{Op: OpCMA}
		case 6:
			return Instruction{Op: OpSTC}
		default:
			return Instruction{Op: OpCMC}
		}
	}
}

func decodeQuadrant1(mid3, low3 byte) Instruction {
	dst, src := regByBits[mid3], regByBits[low3]
	if dst == RegM && src == RegM {
		return Instruction{Op: OpHLT}
	}
	return Instruction{Op: OpMOVRR, Dst: dst, Src: src}
}

func decodeQuadrant3(b0, low3, mid3 byte, b []byte) Instruction {
	switch low3 {
	case 0:
		return Instruction{Op: OpRCOND, Cond: condByBits[mid3]}
	case 1:
		if b0&0x08 == 0 {
			return Instruction{Op: OpPOP, Pair: pushPopPairByBits[(b0>>4)&0x03]}
		}
		switch (b0 >> 4) & 0x03 {
		case 0:
			return Instruction{Op: OpRET}
		case 2:
			return Instruction{Op: OpPCHL}
		case 3:
			return Instruction{Op: OpSPHL}
		default:
			return Instruction{Op: OpNOP} // 0xd9, undocumented RET alias
		}
	case 2:
		return Instruction{Op: OpJCOND, Cond: condByBits[mid3], Imm16: word(byteAt(b, 2), byteAt(b, 1))}
	case 3:
		switch mid3 {
		case 0:
			return Instruction{Op: OpJMP, Imm16: word(byteAt(b, 2), byteAt(b, 1))}
		case 2:
			return Instruction{Op: OpOUT, Imm8: byteAt(b, 1)}
		case 3:
			return Instruction{Op: OpIN, Imm8: byteAt(b, 1)}
		case 4:
			return Instruction{Op: OpXTHL}
		case 5:
			return Instruction{Op: OpXCHG}
		case 6:
			return Instruction{Op: OpDI}
		case 7:
			return Instruction{Op: OpEI}
		default:
			return Instruction{Op: OpNOP} // 0xcb, undocumented JMP alias
		}
	case 4:
		return Instruction{Op: OpCCOND, Cond: condByBits[mid3], Imm16: word(byteAt(b, 2), byteAt(b, 1))}
	case 5:
		if b0&0x08 == 0 {
			return Instruction{Op: OpPUSH, Pair: pushPopPairByBits[(b0>>4)&0x03]}
		}
		if b0 == 0xcd {
			return Instruction{Op: OpCALL, Imm16: word(byteAt(b, 2), byteAt(b, 1))}
		}
		return Instruction{Op: OpNOP} // 0xdd/0xed/0xfd, undocumented CALL aliases
	case 6:
		return Instruction{Op: OpALUImm, ALUOp: aluByBits[mid3], Imm8: byteAt(b, 1)}
	default: // 7
		return Instruction{Op: OpRST, RST: mid3}
	}
}
