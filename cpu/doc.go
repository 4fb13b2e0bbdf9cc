// Package cpu implements the CHIP-8 virtual machine core and its assembler.
//
// The machine has 4KB of byte-addressable memory, sixteen 8-bit registers
// (V0-VF, with VF doubling as the carry/borrow/collision flag), a 16-bit
// index register I, a program counter, a sixteen-entry call stack, delay
// and sound countdown timers, a 64x32 monochrome display, and a sixteen
// key keypad.
//
// Each Tick fetches one big-endian opcode, decodes it into an Instruction,
// advances the program counter, and executes the instruction. The display
// changed flag (Redraw) and the key-wait flag (Waiting) report what the
// tick did to the driver.
//
// The assembler accepts the classic mnemonic syntax (cls, ld, drw, ...)
// with labels, equates, macros, and compile-time expression evaluation.
package cpu
