package cpu

// CyclesFor reports the T-state cost of executing instr, given the
// flags in effect at the moment it is issued (conditional branches and
// calls must be inspected before execution mutates those flags).
//
// Conditional jumps are a flat 10 regardless of outcome: the 8080 does
// not reward or penalize a taken/not-taken J{cond}. Only C{cond} and
// R{cond} have a taken/not-taken split.
func CyclesFor(instr Instruction, flags Flags) (uint8, error) {
	switch instr.Op {
	case OpNOP, OpEI, OpDI:
		return 4, nil
	case OpHLT:
		return 7, nil
	case OpMOVRR:
		if instr.Dst == RegM || instr.Src == RegM {
			return 7, nil
		}
		return 5, nil
	case OpMVI:
		if instr.Dst == RegM {
			return 10, nil
		}
		return 7, nil
	case OpLXI:
		return 10, nil
	case OpLDA, OpSTA:
		return 13, nil
	case OpLHLD, OpSHLD:
		return 16, nil
	case OpLDAX, OpSTAX:
		return 7, nil
	case OpXCHG:
		return 5, nil
	case OpALU:
		if instr.Src == RegM {
			return 7, nil
		}
		return 4, nil
	case OpALUImm:
		return 7, nil
	case OpINR, OpDCR:
		if instr.Dst == RegM {
			return 10, nil
		}
		return 5, nil
	case OpINX, OpDCX:
		return 5, nil
	case OpDAD:
		return 10, nil
	case OpDAA, OpCMA, OpCMC, OpSTC, OpRLC, OpRRC, OpRAL, OpRAR:
		return 4, nil
	case OpJMP, OpJCOND:
		return 10, nil
	case OpCALL:
		return 17, nil
	case OpCCOND:
		if instr.Cond.Satisfied(flags) {
			return 17, nil
		}
		return 11, nil
	case OpRET:
		return 10, nil
	case OpRCOND:
		if instr.Cond.Satisfied(flags) {
			return 11, nil
		}
		return 5, nil
	case OpRST:
		return 11, nil
	case OpPCHL:
		return 5, nil
	case OpPUSH:
		return 11, nil
	case OpPOP:
		return 10, nil
	case OpXTHL:
		return 18, nil
	case OpSPHL:
		return 5, nil
	case OpIN, OpOUT:
		return 10, nil
	}
	return 0, InvalidCyclesCalculation{Op: instr.Op}
}
