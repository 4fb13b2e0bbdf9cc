package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []byte
	Data      bool // Bytes are .byte/.word data, not instructions.
	LinkLabel string
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// NewProgram builds a listing for a raw program image, one line per
// opcode word. A trailing odd byte is listed as data.
func NewProgram(image []byte) (prog *Program) {
	prog = &Program{}
	for n := 0; n < len(image); n += 2 {
		op := Opcode{
			LineNo:  n/2 + 1,
			Address: PROGRAM_BASE + n,
		}
		if n+1 < len(image) {
			op.Bytes = []byte{image[n], image[n+1]}
			ins := Decode(uint16(image[n])<<8 | uint16(image[n+1]))
			op.Words = strings.Fields(ins.String())
		} else {
			op.Bytes = []byte{image[n]}
			op.Words = []string{".byte", fmt.Sprintf("0x%02x", image[n])}
			op.Data = true
		}
		prog.Opcodes = append(prog.Opcodes, op)
	}

	return
}

// Debug locates an address within the listing.
type Debug struct {
	*Opcode
	Index int // Byte offset of the address within the opcode.
}

// Debug finds the listing line that produced the byte at address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(address) >= op.Address && int(address) < op.Address+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(address) - op.Address,
			}
			break
		}
	}

	return
}

// Binary returns the program image to load at PROGRAM_BASE.
func (prog *Program) Binary() (bin []byte) {
	for _, op := range prog.Opcodes {
		offset := op.Address - PROGRAM_BASE
		for len(bin) < offset {
			bin = append(bin, 0)
		}
		bin = append(bin[:offset], op.Bytes...)
	}

	return
}

// Codes iterates over the instructions of the program by address.
func (prog *Program) Codes() iter.Seq2[uint16, Instruction] {
	return func(yield func(address uint16, ins Instruction) bool) {
		for _, op := range prog.Opcodes {
			if op.Data {
				continue
			}
			for n := 0; n+1 < len(op.Bytes); n += 2 {
				word := uint16(op.Bytes[n])<<8 | uint16(op.Bytes[n+1])
				if !yield(uint16(op.Address+n), Decode(word)) {
					return
				}
			}
		}
	}
}
