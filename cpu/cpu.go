package cpu

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
)

// Cpu is the complete CHIP-8 machine state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory                // Font, program and scratch data.
	Register [REGISTER_COUNT]uint8 // V0-VF.
	I        uint16                // Index register.
	Pc       uint16                // Address of the next instruction.
	Stack    Stack                 // Subroutine return addresses.
	Timers   Timers                // Delay and sound timers.
	Display  Display               // Framebuffer.
	Keypad   Keypad                // Pressed keys.
	Rand     *rand.Rand            // Source for rnd.

	Redraw  bool // Set when the last Tick changed the display.
	Waiting bool // Set when the last Tick blocked on a key press.
	Ticks   int  // Instructions executed since reset.
	Unknown int  // Unknown opcodes skipped since reset.
}

// NewCpu creates a new CPU with a randomly seeded rnd source.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Pc:   PROGRAM_BASE,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("   pc: %03X\n", cpu.Pc)
	text += fmt.Sprintf("    i: %03X\n", cpu.I)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("   v%X: %02X\n", n, val)
	}
	val, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("stack: %03X (%d)\n", val, cpu.Stack.Sp())
	} else {
		text += "stack: --- (0)\n"
	}
	text += fmt.Sprintf("   dt: %02X\n", cpu.Timers.Delay)
	text += fmt.Sprintf("   st: %02X\n", cpu.Timers.Sound)

	return
}

// Reset the CPU state.
// - Clears memory, registers, stack, timers, display and keypad.
// - Zeros statistics counters.
// - Sets PC to the program base.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.I = 0
	cpu.Pc = PROGRAM_BASE
	cpu.Stack.Reset()
	cpu.Timers.Reset()
	cpu.Display.Clear()
	cpu.Keypad.Reset()
	cpu.Redraw = false
	cpu.Waiting = false
	cpu.Ticks = 0
	cpu.Unknown = 0

	if cpu.Rand == nil {
		cpu.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// Load resets the CPU, then copies the font to FONT_BASE and the program
// to PROGRAM_BASE.
func (cpu *Cpu) Load(font []byte, program []byte) (err error) {
	if len(font) != FONT_SIZE {
		err = ErrFontSize
		return
	}

	if len(program) > PROGRAM_LIMIT {
		err = ErrProgramSize
		return
	}

	cpu.Reset()

	copy(cpu.Memory[FONT_BASE:], font)
	copy(cpu.Memory[PROGRAM_BASE:], program)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at 0x%03x", len(program), PROGRAM_BASE)
	}

	return
}

// Fetch returns the opcode word at PC.
func (cpu *Cpu) Fetch() uint16 {
	return cpu.Memory.Word(cpu.Pc)
}

// Tick executes a single fetch-decode-execute cycle.
// PC is advanced past the fetched instruction before it executes.
func (cpu *Cpu) Tick() (err error) {
	cpu.Redraw = false
	cpu.Waiting = false

	ins := Decode(cpu.Fetch())

	if cpu.Verbose {
		log.Printf("%03x: %04x %v", cpu.Pc, ins.Code, ins)
	}

	cpu.Pc = (cpu.Pc + 2) & MEMORY_MASK

	err = cpu.Execute(ins)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// Execute executes a single decoded instruction. PC must already point
// at the following instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(ins.Code), err)
		}
	}()

	if ins.Op <= OP_UNKNOWN || ins.Op >= OP_COUNT {
		cpu.Unknown++
		log.Printf("cpu: %03x: unknown opcode 0x%04x", (cpu.Pc-2)&MEMORY_MASK, ins.Code)
		return
	}

	err = opExec[ins.Op](cpu, ins)

	return
}

// skipIf advances PC past the next instruction when cond holds.
func (cpu *Cpu) skipIf(cond bool) {
	if cond {
		cpu.Pc = (cpu.Pc + 2) & MEMORY_MASK
	}
}
