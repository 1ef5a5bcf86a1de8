package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSizes(t *testing.T) {
	cases := []struct {
		bytes []byte
		size  int
	}{
		{[]byte{0x00}, 1},             // NOP
		{[]byte{0x06, 0x42}, 2},       // MVI B,0x42
		{[]byte{0x01, 0x34, 0x12}, 3}, // LXI B,0x1234
		{[]byte{0x32, 0x34, 0x12}, 3}, // STA 0x1234
		{[]byte{0xc3, 0x34, 0x12}, 3}, // JMP 0x1234
		{[]byte{0xcd, 0x34, 0x12}, 3}, // CALL 0x1234
		{[]byte{0xd3, 0x01}, 2},       // OUT 1
		{[]byte{0xdb, 0x01}, 2},       // IN 1
	}
	for _, c := range cases {
		_, size := Decode(c.bytes)
		assert.Equal(t, c.size, size, "% x", c.bytes)
	}
}

func TestDecodeMOVAndHLT(t *testing.T) {
	instr, size := Decode([]byte{0x41}) // MOV B,C
	assert.Equal(t, OpMOVRR, instr.Op)
	assert.Equal(t, RegB, instr.Dst)
	assert.Equal(t, RegC, instr.Src)
	assert.Equal(t, 1, size)

	instr, _ = Decode([]byte{0x76}) // the MOV M,M slot is HLT
	assert.Equal(t, OpHLT, instr.Op)
}

func TestDecodeALU(t *testing.T) {
	instr, _ := Decode([]byte{0x80}) // ADD B
	assert.Equal(t, OpALU, instr.Op)
	assert.Equal(t, ALUAdd, instr.ALUOp)
	assert.Equal(t, RegB, instr.Src)

	instr, _ = Decode([]byte{0xfe, 0x10}) // CPI 0x10
	assert.Equal(t, OpALUImm, instr.Op)
	assert.Equal(t, ALUCmp, instr.ALUOp)
	assert.Equal(t, byte(0x10), instr.Imm8)
}

func TestDecodePushPopPSW(t *testing.T) {
	instr, _ := Decode([]byte{0xf5}) // PUSH PSW
	assert.Equal(t, OpPUSH, instr.Op)
	assert.Equal(t, PairPSW, instr.Pair)

	instr, _ = Decode([]byte{0xf1}) // POP PSW
	assert.Equal(t, OpPOP, instr.Op)
	assert.Equal(t, PairPSW, instr.Pair)
}

func TestDecodeConditionalBranches(t *testing.T) {
	instr, _ := Decode([]byte{0xca, 0x00, 0x10}) // JZ 0x1000
	assert.Equal(t, OpJCOND, instr.Op)
	assert.Equal(t, CondZ, instr.Cond)
	assert.Equal(t, uint16(0x1000), instr.Imm16)

	instr, _ = Decode([]byte{0xd8}) // RC
	assert.Equal(t, OpRCOND, instr.Op)
	assert.Equal(t, CondC, instr.Cond)
}

func TestDecodeRST(t *testing.T) {
	instr, size := Decode([]byte{0xcf}) // RST 1
	assert.Equal(t, OpRST, instr.Op)
	assert.Equal(t, byte(1), instr.RST)
	assert.Equal(t, 1, size)
}

func TestConditionSatisfied(t *testing.T) {
	f := Flags{Zero: true, Carry: false, Sign: true, Parity: false}
	assert.True(t, CondZ.Satisfied(f))
	assert.False(t, CondNZ.Satisfied(f))
	assert.True(t, CondC.Satisfied(Flags{Carry: true}))
	assert.True(t, CondM.Satisfied(f))
	assert.True(t, CondPO.Satisfied(f))
}
