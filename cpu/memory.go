package cpu

import (
	"fmt"
	"iter"
	"maps"
)

// Memory map constants.
const (
	MEMORY_SIZE     = 0x1000                     // Total addressable memory.
	MEMORY_MASK     = MEMORY_SIZE - 1            // Address wrap mask.
	FONT_BASE       = 0x000                      // Address of the digit font.
	FONT_GLYPH_SIZE = 5                          // Bytes per font glyph.
	FONT_SIZE       = 16 * FONT_GLYPH_SIZE       // Total font size.
	PROGRAM_BASE    = 0x200                      // Program load address.
	PROGRAM_LIMIT   = MEMORY_SIZE - PROGRAM_BASE // Largest loadable program.
	REGISTER_COUNT  = 16                         // General purpose registers.
	REGISTER_FLAG   = REGISTER_COUNT - 1         // VF, the flag register.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":     fmt.Sprintf("%#x", MEMORY_SIZE),
	"FONT_BASE":       fmt.Sprintf("%#x", FONT_BASE),
	"FONT_GLYPH_SIZE": fmt.Sprintf("%v", FONT_GLYPH_SIZE),
	"PROGRAM_BASE":    fmt.Sprintf("%#x", PROGRAM_BASE),
	"PROGRAM_LIMIT":   fmt.Sprintf("%#x", PROGRAM_LIMIT),
	"STACK_LIMIT":     fmt.Sprintf("%v", STACK_LIMIT),
}

// Defines returns the memory map constants as assembler equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Memory is the flat byte-addressable store. All accessors wrap the
// address to 12 bits.
type Memory [MEMORY_SIZE]byte

// Read returns the byte at addr.
func (mem *Memory) Read(addr uint16) byte {
	return mem[addr&MEMORY_MASK]
}

// Write stores value at addr.
func (mem *Memory) Write(addr uint16, value byte) {
	mem[addr&MEMORY_MASK] = value
}

// Word returns the big-endian 16-bit word at addr.
func (mem *Memory) Word(addr uint16) uint16 {
	return uint16(mem.Read(addr))<<8 | uint16(mem.Read(addr+1))
}

// Slice copies n bytes starting at addr, wrapping at the top of memory.
func (mem *Memory) Slice(addr uint16, n int) (data []byte) {
	data = make([]byte, n)
	for i := range n {
		data[i] = mem.Read(addr + uint16(i))
	}
	return
}
