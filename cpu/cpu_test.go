package cpu

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newTestCpu returns a CPU loaded with the font and program words.
func newTestCpu(t *testing.T, words ...uint16) *Cpu {
	cpu := NewCpu()
	cpu.Rand = rand.New(rand.NewPCG(1, 2))

	program := make([]byte, 0, len(words)*2)
	for _, word := range words {
		program = append(program, byte(word>>8), byte(word))
	}

	err := cpu.Load(FONTSET[:], program)
	if err != nil {
		t.Fatal(err)
	}

	return cpu
}

// run executes count ticks, failing on any error.
func run(t *testing.T, cpu *Cpu, count int) {
	for range count {
		err := cpu.Tick()
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestCpu_Load(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(uint16(PROGRAM_BASE), cpu.Pc)

	err := cpu.Load(FONTSET[:10], nil)
	assert.ErrorIs(err, ErrFontSize)

	err = cpu.Load(FONTSET[:], make([]byte, PROGRAM_LIMIT+1))
	assert.ErrorIs(err, ErrProgramSize)

	err = cpu.Load(FONTSET[:], make([]byte, PROGRAM_LIMIT))
	assert.NoError(err)

	cpu.Register[3] = 7
	err = cpu.Load(FONTSET[:], []byte{0x12, 0x34})
	assert.NoError(err)
	assert.Equal(FONTSET[:], cpu.Memory[FONT_BASE:FONT_BASE+FONT_SIZE])
	assert.Equal(byte(0x12), cpu.Memory[PROGRAM_BASE])
	assert.Equal(byte(0x34), cpu.Memory[PROGRAM_BASE+1])
	assert.Equal(uint8(0), cpu.Register[3])
	assert.Equal(uint16(PROGRAM_BASE), cpu.Pc)
}

func TestCpu_Jump(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x1234)
	run(t, cpu, 1)
	assert.Equal(uint16(0x234), cpu.Pc)

	cpu = newTestCpu(t, 0x6004, 0xb300)
	run(t, cpu, 2)
	assert.Equal(uint16(0x304), cpu.Pc)
}

func TestCpu_CallRet(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		0x2206, // 0x200: call 0x206
		0x6101, // 0x202: ld v1 1
		0x1204, // 0x204: jp 0x204
		0x6202, // 0x206: ld v2 2
		0x00ee, // 0x208: ret
	)

	run(t, cpu, 1)
	assert.Equal(uint16(0x206), cpu.Pc)
	assert.Equal(1, cpu.Stack.Sp())

	run(t, cpu, 2)
	assert.Equal(uint16(0x202), cpu.Pc)
	assert.Equal(0, cpu.Stack.Sp())

	run(t, cpu, 1)
	assert.Equal(uint8(1), cpu.Register[1])
	assert.Equal(uint8(2), cpu.Register[2])
}

func TestCpu_StackErrors(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x00ee)
	err := cpu.Tick()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.ErrorIs(err, ErrOpcode(0))
	assert.Equal(0, cpu.Ticks)

	// call 0x200 recurses until the stack overflows.
	cpu = newTestCpu(t, 0x2200)
	for range STACK_LIMIT {
		assert.NoError(cpu.Tick())
	}
	err = cpu.Tick()
	assert.ErrorIs(err, ErrStackFull)
	var eo ErrOpcode
	assert.True(errors.As(err, &eo))
	assert.Equal(ErrOpcode(0x2200), eo)
}

func TestCpu_Skips(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		words []uint16
		pc    uint16
	}{
		{[]uint16{0x6105, 0x3105}, 0x206}, // se v1 5, taken
		{[]uint16{0x6105, 0x3106}, 0x204}, // se v1 6
		{[]uint16{0x6105, 0x4105}, 0x204}, // sne v1 5
		{[]uint16{0x6105, 0x4106}, 0x206}, // sne v1 6, taken
		{[]uint16{0x6105, 0x5120}, 0x204}, // se v1 v2
		{[]uint16{0x6105, 0x9120}, 0x206}, // sne v1 v2, taken
		{[]uint16{0x6100, 0x5120}, 0x206}, // se v1 v2, taken
		{[]uint16{0x6100, 0x9120}, 0x204}, // sne v1 v2
	}

	for _, entry := range table {
		cpu := newTestCpu(t, entry.words...)
		run(t, cpu, 2)
		assert.Equal(entry.pc, cpu.Pc, "%04x", entry.words)
	}
}

func TestCpu_LoadAdd(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		0x6af0, // ld va 0xf0
		0x7a20, // add va 0x20
		0x8ba0, // ld vb va
	)
	cpu.Register[REGISTER_FLAG] = 0x55

	run(t, cpu, 3)
	assert.Equal(uint8(0x10), cpu.Register[0xa])
	assert.Equal(uint8(0x10), cpu.Register[0xb])
	// add vX NN leaves the flag alone.
	assert.Equal(uint8(0x55), cpu.Register[REGISTER_FLAG])
}

func TestCpu_Logic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word   uint16
		result uint8
	}{
		{0x8121, 0xfc}, // or
		{0x8122, 0x30}, // and
		{0x8123, 0xcc}, // xor
	}

	for _, entry := range table {
		cpu := newTestCpu(t, 0x61f0, 0x623c, entry.word)
		run(t, cpu, 3)
		assert.Equal(entry.result, cpu.Register[1], "%04x", entry.word)
		assert.Equal(uint8(0x3c), cpu.Register[2])
	}
}

func TestCpu_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		vx, vy uint8
		word   uint16
		result uint8
		flag   uint8
	}{
		{"add carry", 0xff, 0x01, 0x8124, 0x00, 1},
		{"add", 0x10, 0x20, 0x8124, 0x30, 0},
		{"sub", 0x05, 0x03, 0x8125, 0x02, 0},
		{"sub equal", 0x05, 0x05, 0x8125, 0x00, 0},
		{"sub borrow", 0x03, 0x05, 0x8125, 0xfe, 1},
		{"subn", 0x03, 0x05, 0x8127, 0x02, 0},
		{"subn borrow", 0x05, 0x03, 0x8127, 0xfe, 1},
		{"shr", 0x05, 0x00, 0x8126, 0x02, 1},
		{"shr even", 0x04, 0x00, 0x8126, 0x02, 0},
		{"shl", 0x81, 0x00, 0x812e, 0x02, 1},
		{"shl low", 0x41, 0x00, 0x812e, 0x82, 0},
	}

	for _, entry := range table {
		cpu := newTestCpu(t, entry.word)
		cpu.Register[1] = entry.vx
		cpu.Register[2] = entry.vy
		run(t, cpu, 1)
		assert.Equal(entry.result, cpu.Register[1], entry.name)
		assert.Equal(entry.flag, cpu.Register[REGISTER_FLAG], entry.name)
	}
}

func TestCpu_FlagRegister(t *testing.T) {
	assert := assert.New(t)

	// With x = F the flag wins over the result.
	cpu := newTestCpu(t, 0x8f14)
	cpu.Register[0xf] = 0xff
	cpu.Register[0x1] = 0x02
	run(t, cpu, 1)
	assert.Equal(uint8(1), cpu.Register[0xf])
}

func TestCpu_Index(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		0xa300, // ld i 0x300
		0x6120, // ld v1 0x20
		0xf11e, // add i v1
		0x6207, // ld v2 7
		0xf229, // ld f v2
	)

	run(t, cpu, 3)
	assert.Equal(uint16(0x320), cpu.I)

	run(t, cpu, 2)
	assert.Equal(FontAddress(7), cpu.I)
}

func TestCpu_Random(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0xc10f, 0xc200)
	run(t, cpu, 2)
	assert.Equal(uint8(0), cpu.Register[1]&0xf0)
	assert.Equal(uint8(0), cpu.Register[2])
}

func TestCpu_Draw(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		0xa20a, // 0x200: ld i 0x20a
		0xd011, // 0x202: drw v0 v1 1
		0xd011, // 0x204: drw v0 v1 1
		0x00e0, // 0x206: cls
		0x1208, // 0x208: jp 0x208
		0xff00, // 0x20a: sprite row
	)

	run(t, cpu, 1)
	assert.False(cpu.Redraw)

	run(t, cpu, 1)
	assert.True(cpu.Redraw)
	assert.Equal(uint8(0), cpu.Register[REGISTER_FLAG])
	for x := range 8 {
		assert.True(cpu.Display.Pixel(x, 0))
	}
	assert.False(cpu.Display.Pixel(8, 0))

	run(t, cpu, 1)
	assert.True(cpu.Redraw)
	assert.Equal(uint8(1), cpu.Register[REGISTER_FLAG])
	frame := cpu.Display.Snapshot()
	assert.Equal(0, frame.Lit())

	cpu.Display.Draw(5, 5, []byte{0x80})
	run(t, cpu, 1)
	assert.True(cpu.Redraw)
	frame = cpu.Display.Snapshot()
	assert.Equal(0, frame.Lit())

	run(t, cpu, 1)
	assert.False(cpu.Redraw)
}

func TestCpu_DrawFont(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		0x600a, // ld v0 0xa
		0xf029, // ld f v0
		0x6104, // ld v1 4
		0xd115, // drw v1 v1 5
	)
	run(t, cpu, 4)

	// 'A' is 0xf0 0x90 0xf0 0x90 0x90
	assert.True(cpu.Display.Pixel(4, 4))
	assert.True(cpu.Display.Pixel(7, 4))
	assert.False(cpu.Display.Pixel(5, 5))
	assert.True(cpu.Display.Pixel(7, 8))
	assert.Equal(uint8(0), cpu.Register[REGISTER_FLAG])
}

func TestCpu_Keys(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x6105, 0xe19e, 0xe1a1)
	run(t, cpu, 2)
	assert.Equal(uint16(0x204), cpu.Pc)

	cpu = newTestCpu(t, 0x6105, 0xe19e)
	cpu.Keypad.Press(5)
	run(t, cpu, 2)
	assert.Equal(uint16(0x206), cpu.Pc)

	cpu = newTestCpu(t, 0x6105, 0xe1a1)
	run(t, cpu, 2)
	assert.Equal(uint16(0x206), cpu.Pc)

	cpu = newTestCpu(t, 0x6105, 0xe1a1)
	cpu.Keypad.Press(5)
	run(t, cpu, 2)
	assert.Equal(uint16(0x204), cpu.Pc)
}

func TestCpu_WaitKey(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0xf30a, 0x6101)

	for range 5 {
		run(t, cpu, 1)
		assert.True(cpu.Waiting)
		assert.Equal(uint16(PROGRAM_BASE), cpu.Pc)
	}

	cpu.Keypad.Press(0xc)
	cpu.Keypad.Press(0x9)
	run(t, cpu, 1)
	assert.False(cpu.Waiting)
	assert.Equal(uint8(0x9), cpu.Register[3])
	assert.Equal(uint16(PROGRAM_BASE+2), cpu.Pc)
}

func TestCpu_Timers(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		0x6130, // ld v1 0x30
		0xf115, // ld dt v1
		0xf118, // ld st v1
		0xf207, // ld v2 dt
	)
	run(t, cpu, 3)
	assert.Equal(uint8(0x30), cpu.Timers.Delay)
	assert.Equal(uint8(0x30), cpu.Timers.Sound)

	cpu.Timers.Tick()
	run(t, cpu, 1)
	assert.Equal(uint8(0x2f), cpu.Register[2])
}

func TestCpu_Bcd(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		value  uint8
		digits []byte
	}{
		{0, []byte{0, 0, 0}},
		{9, []byte{0, 0, 9}},
		{42, []byte{0, 4, 2}},
		{156, []byte{1, 5, 6}},
		{255, []byte{2, 5, 5}},
	}

	for _, entry := range table {
		cpu := newTestCpu(t, 0xa300, 0xf133)
		cpu.Register[1] = entry.value
		run(t, cpu, 2)
		assert.Equal(entry.digits, cpu.Memory.Slice(0x300, 3), "%d", entry.value)
		assert.Equal(uint16(0x300), cpu.I)
	}
}

func TestCpu_StoreLoad(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t,
		0xa300, // ld i 0x300
		0xf455, // ld [i] v4
		0xa300, // ld i 0x300
		0xf465, // ld v4 [i]
	)
	for n := range REGISTER_COUNT {
		cpu.Register[n] = uint8(0x10 + n)
	}

	run(t, cpu, 2)
	assert.Equal([]byte{0x10, 0x11, 0x12, 0x13, 0x14, 0x00}, cpu.Memory.Slice(0x300, 6))
	assert.Equal(uint16(0x300), cpu.I)

	clear(cpu.Register[:])
	run(t, cpu, 2)
	assert.Equal([]uint8{0x10, 0x11, 0x12, 0x13, 0x14, 0x00}, cpu.Register[:6])
	assert.Equal(uint16(0x300), cpu.I)
}

func TestCpu_Unknown(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x0123, 0x6101)
	run(t, cpu, 2)
	assert.Equal(1, cpu.Unknown)
	assert.Equal(2, cpu.Ticks)
	assert.Equal(uint8(1), cpu.Register[1])
}

func TestCpu_PcWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x1ffe)
	cpu.Memory.Write(0xffe, 0x61)
	cpu.Memory.Write(0xfff, 0x23)
	run(t, cpu, 2)
	assert.Equal(uint8(0x23), cpu.Register[1])
	assert.Equal(uint16(0x000), cpu.Pc)
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x6101, 0x2200)
	run(t, cpu, 2)
	cpu.Timers.Delay = 3
	cpu.Keypad.Press(1)

	cpu.Reset()
	assert.Equal(uint16(PROGRAM_BASE), cpu.Pc)
	assert.Equal(uint8(0), cpu.Register[1])
	assert.True(cpu.Stack.Empty())
	assert.Equal(Timers{}, cpu.Timers)
	assert.False(cpu.Keypad.Pressed(1))
	assert.Equal(0, cpu.Ticks)
	assert.Equal(byte(0), cpu.Memory[PROGRAM_BASE])
	assert.NotNil(cpu.Rand)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x6a42)
	run(t, cpu, 1)
	text := cpu.String()
	assert.Contains(text, "   pc: 202\n")
	assert.Contains(text, "   vA: 42\n")
	assert.Contains(text, "stack: --- (0)\n")
}
