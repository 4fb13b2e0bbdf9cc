// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

var _emulator_defines = map[string]string{
	"SCREEN_WIDTH":  fmt.Sprintf("%v", cpu.SCREEN_WIDTH),
	"SCREEN_HEIGHT": fmt.Sprintf("%v", cpu.SCREEN_HEIGHT),
	"SPRITE_WIDTH":  fmt.Sprintf("%v", cpu.SPRITE_WIDTH),
	"KEY_COUNT":     fmt.Sprintf("%v", io.KEY_COUNT),
	"TICK_RATE":     fmt.Sprintf("%v", TICK_RATE),
}

// Emulator state. CPU + collaborators.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Font     []byte       // Font loaded at FONT_BASE on reset.
	Speed    float64      // Multiplier of TICK_RATE used by Run.

	Display io.Display // Receives frames when the display changes.
	Input   io.Input   // Polled once per tick.
	Audio   io.Audio   // Receives sound timer beeps.
}

// NewEmulator creates a new emulator with discarding collaborators.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Font:    cpu.FONTSET[:],
		Speed:   1,
		Display: io.Discard,
		Input:   io.Discard,
		Audio:   io.Discard,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
	)
}

// Reset the machine and load the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Program == nil {
		emu.Program = &cpu.Program{}
	}

	err = emu.Cpu.Load(emu.Font, emu.Program.Binary())

	return
}

// LoadRom attaches a raw program image and resets the machine.
func (emu *Emulator) LoadRom(rom []byte) (err error) {
	emu.Program = cpu.NewProgram(rom)

	err = emu.Reset()

	return
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() cpu.Instruction {
	return cpu.Decode(emu.Cpu.Fetch())
}

// LineNo returns the listing line number for an address, or 0.
func (emu *Emulator) LineNo(address uint16) int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(address)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator:
// - polls input once and applies the key edges,
// - executes one instruction,
// - counts down the timers, beeping when the sound timer expires,
// - presents the frame if the instruction changed the display.
func (emu *Emulator) Tick() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	address := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: emu.LineNo(address), Err: err}
		}
	}()

	for _, edge := range emu.Input.Poll() {
		if emu.Verbose {
			log.Printf("emulator: key %x down=%v", edge.Key, edge.Down)
		}
		emu.Cpu.Keypad.Apply(edge)
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	if emu.Cpu.Timers.Tick() {
		if emu.Verbose {
			log.Printf("emulator: beep")
		}
		emu.Audio.Beep()
	}

	if emu.Cpu.Redraw {
		err = emu.Display.Present(emu.Cpu.Display.Snapshot())
		if err != nil {
			return
		}
	}

	return
}

// Run ticks the emulator at Speed until the context is cancelled or a
// tick fails. Cancellation is not an error.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	clock, err := NewClock(emu.Speed)
	if err != nil {
		return
	}

	for ctx.Err() == nil {
		err = emu.Tick()
		if err != nil {
			return
		}

		if clock.Wait(ctx) != nil {
			break
		}
	}

	if emu.Verbose {
		log.Printf("emulator: stopped after %d ticks", emu.Cpu.Ticks)
	}

	return
}
