package cpu

import "i8080/mask"

// Flags are the five independent condition bits the 8080 tracks after
// arithmetic and logical operations.
//
// 7654 3210
// ---- -AC-P-C-S-Z  (see flagsByte below for the PSW bit layout; this
// struct itself has no bit order, it's just five named bools)
type Flags struct {
	Sign     bool // set if the result's bit 7 is 1
	Zero     bool // set if the result is 0
	Parity   bool // set if the result has an even number of 1 bits
	Carry    bool // set on overflow out of bit 7 (arithmetic), or the bit rotated out of A (rotates)
	AuxCarry bool // set on carry out of bit 3 (BCD nibble carry)
}

// Registers is the 8080's register file: seven general-purpose 8-bit
// registers, the stack pointer, the program counter, and the flags.
type Registers struct {
	A, B, C, D, E, H, L byte
	SP                  uint16
	PC                  uint16
	Flags               Flags
}

// BC returns the virtual 16-bit pair formed by B (high) and C (low).
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC stores v into the B/C pair, high byte in B.
func (r *Registers) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }

// DE returns the virtual 16-bit pair formed by D (high) and E (low).
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE stores v into the D/E pair, high byte in D.
func (r *Registers) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }

// HL returns the virtual 16-bit pair formed by H (high) and L (low).
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL stores v into the H/L pair, high byte in H.
func (r *Registers) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

// flagsByte packs the five flags into the byte layout documented for
// this implementation's PSW (Z bit 0, S bit 1, P bit 2, C bit 3, AC bit
// 4, bits 5-7 unused). This deviates from real 8080 hardware, which
// places S/Z/AC/P/C at bits 7/6/4/2/0 with fixed filler bits; that
// hardware-accurate layout was considered and rejected — see DESIGN.md.
//
// mask.Set's pos is 1-indexed from the MSB (pos 1 is bit 7, pos 8 is
// bit 0), so the bit-0..bit-4 layout above maps to positions 8..4.
func (f Flags) flagsByte() byte {
	var b byte
	b = mask.Set(b, mask.I8, boolBit(f.Zero))
	b = mask.Set(b, mask.I7, boolBit(f.Sign))
	b = mask.Set(b, mask.I6, boolBit(f.Parity))
	b = mask.Set(b, mask.I5, boolBit(f.Carry))
	b = mask.Set(b, mask.I4, boolBit(f.AuxCarry))
	return b
}

// setFlagsByte unpacks b (as produced by flagsByte) back into f.
func (f *Flags) setFlagsByte(b byte) {
	f.Zero = mask.IsSet(b, mask.I8)
	f.Sign = mask.IsSet(b, mask.I7)
	f.Parity = mask.IsSet(b, mask.I6)
	f.Carry = mask.IsSet(b, mask.I5)
	f.AuxCarry = mask.IsSet(b, mask.I4)
}

// PSW returns the program status word: A in the high byte, the packed
// flags byte in the low byte.
func (r *Registers) PSW() uint16 {
	return uint16(r.A)<<8 | uint16(r.Flags.flagsByte())
}

// SetPSW unpacks v (high byte to A, low byte to flags) as produced by
// PSW, the POP PSW contract.
func (r *Registers) SetPSW(v uint16) {
	r.A = byte(v >> 8)
	r.Flags.setFlagsByte(byte(v))
}
