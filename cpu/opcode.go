package cpu

import (
	"fmt"
	"strings"
)

// Op identifies a decoded instruction.
type Op int

const (
	OP_UNKNOWN  = Op(0)  // .word NNN
	OP_CLS      = Op(1)  // cls
	OP_RET      = Op(2)  // ret
	OP_JP       = Op(3)  // jp NNN
	OP_CALL     = Op(4)  // call NNN
	OP_SE_IMM   = Op(5)  // se vX NN
	OP_SNE_IMM  = Op(6)  // sne vX NN
	OP_SE_REG   = Op(7)  // se vX vY
	OP_LD_IMM   = Op(8)  // ld vX NN
	OP_ADD_IMM  = Op(9)  // add vX NN
	OP_LD_REG   = Op(10) // ld vX vY
	OP_OR       = Op(11) // or vX vY
	OP_AND      = Op(12) // and vX vY
	OP_XOR      = Op(13) // xor vX vY
	OP_ADD_REG  = Op(14) // add vX vY
	OP_SUB      = Op(15) // sub vX vY
	OP_SHR      = Op(16) // shr vX vY
	OP_SUBN     = Op(17) // subn vX vY
	OP_SHL      = Op(18) // shl vX vY
	OP_SNE_REG  = Op(19) // sne vX vY
	OP_LD_I     = Op(20) // ld i NNN
	OP_JP_V0    = Op(21) // jp v0 NNN
	OP_RND      = Op(22) // rnd vX NN
	OP_DRW      = Op(23) // drw vX vY N
	OP_SKP      = Op(24) // skp vX
	OP_SKNP     = Op(25) // sknp vX
	OP_LD_VX_DT = Op(26) // ld vX dt
	OP_LD_KEY   = Op(27) // ld vX k
	OP_LD_DT_VX = Op(28) // ld dt vX
	OP_LD_ST_VX = Op(29) // ld st vX
	OP_ADD_I    = Op(30) // add i vX
	OP_LD_F     = Op(31) // ld f vX
	OP_LD_B     = Op(32) // ld b vX
	OP_LD_STORE = Op(33) // ld [i] vX
	OP_LD_LOAD  = Op(34) // ld vX [i]
	OP_COUNT    = Op(35) // Number of ops.
)

// opInfo describes how an op is encoded and written.
type opInfo struct {
	base   uint16 // Opcode with all operand fields zero.
	syntax string // Assembly syntax; vX, vY, NNN, NN and N are operands.
}

var opTable = [OP_COUNT]opInfo{
	OP_UNKNOWN:  {0x0000, ".word NNNN"},
	OP_CLS:      {0x00e0, "cls"},
	OP_RET:      {0x00ee, "ret"},
	OP_JP:       {0x1000, "jp NNN"},
	OP_CALL:     {0x2000, "call NNN"},
	OP_SE_IMM:   {0x3000, "se vX NN"},
	OP_SNE_IMM:  {0x4000, "sne vX NN"},
	OP_SE_REG:   {0x5000, "se vX vY"},
	OP_LD_IMM:   {0x6000, "ld vX NN"},
	OP_ADD_IMM:  {0x7000, "add vX NN"},
	OP_LD_REG:   {0x8000, "ld vX vY"},
	OP_OR:       {0x8001, "or vX vY"},
	OP_AND:      {0x8002, "and vX vY"},
	OP_XOR:      {0x8003, "xor vX vY"},
	OP_ADD_REG:  {0x8004, "add vX vY"},
	OP_SUB:      {0x8005, "sub vX vY"},
	OP_SHR:      {0x8006, "shr vX vY"},
	OP_SUBN:     {0x8007, "subn vX vY"},
	OP_SHL:      {0x800e, "shl vX vY"},
	OP_SNE_REG:  {0x9000, "sne vX vY"},
	OP_LD_I:     {0xa000, "ld i NNN"},
	OP_JP_V0:    {0xb000, "jp v0 NNN"},
	OP_RND:      {0xc000, "rnd vX NN"},
	OP_DRW:      {0xd000, "drw vX vY N"},
	OP_SKP:      {0xe09e, "skp vX"},
	OP_SKNP:     {0xe0a1, "sknp vX"},
	OP_LD_VX_DT: {0xf007, "ld vX dt"},
	OP_LD_KEY:   {0xf00a, "ld vX k"},
	OP_LD_DT_VX: {0xf015, "ld dt vX"},
	OP_LD_ST_VX: {0xf018, "ld st vX"},
	OP_ADD_I:    {0xf01e, "add i vX"},
	OP_LD_F:     {0xf029, "ld f vX"},
	OP_LD_B:     {0xf033, "ld b vX"},
	OP_LD_STORE: {0xf055, "ld [i] vX"},
	OP_LD_LOAD:  {0xf065, "ld vX [i]"},
}

// Mnemonic returns the instruction name of the op.
func (op Op) Mnemonic() string {
	if op < 0 || op >= OP_COUNT {
		return "?"
	}
	name, _, _ := strings.Cut(opTable[op].syntax, " ")
	return name
}

// Syntax returns the assembly template of the op.
func (op Op) Syntax() string {
	if op < 0 || op >= OP_COUNT {
		return "?"
	}
	return opTable[op].syntax
}

// Instruction is a decoded opcode: the op tag plus the raw word the
// operand fields are taken from.
type Instruction struct {
	Op   Op
	Code uint16
}

// X returns the register index in bits 8-11.
func (ins Instruction) X() int {
	return int((ins.Code >> 8) & 0xf)
}

// Y returns the register index in bits 4-7.
func (ins Instruction) Y() int {
	return int((ins.Code >> 4) & 0xf)
}

// N returns the nibble in bits 0-3.
func (ins Instruction) N() uint8 {
	return uint8(ins.Code & 0xf)
}

// NN returns the byte in bits 0-7.
func (ins Instruction) NN() uint8 {
	return uint8(ins.Code & 0xff)
}

// NNN returns the address in bits 0-11.
func (ins Instruction) NNN() uint16 {
	return ins.Code & 0xfff
}

// Decode an opcode word into an Instruction. Unassigned words decode to
// OP_UNKNOWN.
func Decode(word uint16) (ins Instruction) {
	ins.Code = word

	switch word & 0xf000 {
	case 0x0000:
		switch word {
		case 0x00e0:
			ins.Op = OP_CLS
		case 0x00ee:
			ins.Op = OP_RET
		}
	case 0x1000:
		ins.Op = OP_JP
	case 0x2000:
		ins.Op = OP_CALL
	case 0x3000:
		ins.Op = OP_SE_IMM
	case 0x4000:
		ins.Op = OP_SNE_IMM
	case 0x5000:
		if word&0xf == 0 {
			ins.Op = OP_SE_REG
		}
	case 0x6000:
		ins.Op = OP_LD_IMM
	case 0x7000:
		ins.Op = OP_ADD_IMM
	case 0x8000:
		switch word & 0xf {
		case 0x0:
			ins.Op = OP_LD_REG
		case 0x1:
			ins.Op = OP_OR
		case 0x2:
			ins.Op = OP_AND
		case 0x3:
			ins.Op = OP_XOR
		case 0x4:
			ins.Op = OP_ADD_REG
		case 0x5:
			ins.Op = OP_SUB
		case 0x6:
			ins.Op = OP_SHR
		case 0x7:
			ins.Op = OP_SUBN
		case 0xe:
			ins.Op = OP_SHL
		}
	case 0x9000:
		if word&0xf == 0 {
			ins.Op = OP_SNE_REG
		}
	case 0xa000:
		ins.Op = OP_LD_I
	case 0xb000:
		ins.Op = OP_JP_V0
	case 0xc000:
		ins.Op = OP_RND
	case 0xd000:
		ins.Op = OP_DRW
	case 0xe000:
		switch word & 0xff {
		case 0x9e:
			ins.Op = OP_SKP
		case 0xa1:
			ins.Op = OP_SKNP
		}
	case 0xf000:
		switch word & 0xff {
		case 0x07:
			ins.Op = OP_LD_VX_DT
		case 0x0a:
			ins.Op = OP_LD_KEY
		case 0x15:
			ins.Op = OP_LD_DT_VX
		case 0x18:
			ins.Op = OP_LD_ST_VX
		case 0x1e:
			ins.Op = OP_ADD_I
		case 0x29:
			ins.Op = OP_LD_F
		case 0x33:
			ins.Op = OP_LD_B
		case 0x55:
			ins.Op = OP_LD_STORE
		case 0x65:
			ins.Op = OP_LD_LOAD
		}
	}

	return
}

// MakeCode encodes an instruction from its operand fields. Fields the
// op does not use are ignored.
func MakeCode(op Op, x, y int, imm uint16) Instruction {
	if op <= OP_UNKNOWN || op >= OP_COUNT {
		return Instruction{Op: OP_UNKNOWN, Code: imm}
	}

	word := opTable[op].base
	for _, field := range strings.Fields(opTable[op].syntax)[1:] {
		switch field {
		case "vX":
			word |= uint16(x&0xf) << 8
		case "vY":
			word |= uint16(y&0xf) << 4
		case "NNN":
			word |= imm & 0xfff
		case "NN":
			word |= imm & 0xff
		case "N":
			word |= imm & 0xf
		}
	}

	return Instruction{Op: op, Code: word}
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	if ins.Op <= OP_UNKNOWN || ins.Op >= OP_COUNT {
		return fmt.Sprintf(".word 0x%04x", ins.Code)
	}

	fields := strings.Fields(opTable[ins.Op].syntax)
	for n, field := range fields {
		switch field {
		case "vX":
			fields[n] = fmt.Sprintf("v%x", ins.X())
		case "vY":
			fields[n] = fmt.Sprintf("v%x", ins.Y())
		case "NNN":
			fields[n] = fmt.Sprintf("0x%03x", ins.NNN())
		case "NN":
			fields[n] = fmt.Sprintf("0x%02x", ins.NN())
		case "N":
			fields[n] = fmt.Sprintf("%d", ins.N())
		}
	}

	return strings.Join(fields, " ")
}
