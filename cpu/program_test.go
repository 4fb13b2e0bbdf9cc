package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Address: 0x200, Words: []string{"cls"}, Bytes: []byte{0x00, 0xe0}},
			{LineNo: 2, Address: 0x202, Words: []string{"ld", "i", "sprite"}, Bytes: []byte{0xa2, 0x08}, LinkLabel: "sprite"},
			{LineNo: 3, Address: 0x204, Words: []string{"jp", "0x204"}, Bytes: []byte{0x12, 0x04}},
			{LineNo: 5, Address: 0x208, Words: []string{".byte", "0xf0", "0x90", "0xf0"}, Bytes: []byte{0xf0, 0x90, 0xf0}, Data: true},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x200)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x203)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(0x20a)
	assert.NotNil(dbg.Opcode)
	assert.Equal(5, dbg.LineNo)
	assert.Equal(2, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x206)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x100)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	expected := []byte{
		0x00, 0xe0,
		0xa2, 0x08,
		0x12, 0x04,
		0x00, 0x00, // gap
		0xf0, 0x90, 0xf0,
	}
	assert.Equal(expected, prog.Binary())

	assert.Nil((&Program{}).Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addresses []uint16
	var text []string
	for address, ins := range prog.Codes() {
		addresses = append(addresses, address)
		text = append(text, ins.String())
	}

	assert.Equal([]uint16{0x200, 0x202, 0x204}, addresses)
	assert.Equal([]string{"cls", "ld i 0x208", "jp 0x204"}, text)

	// Early exit.
	count := 0
	for range prog.Codes() {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestNewProgram(t *testing.T) {
	assert := assert.New(t)

	image := []byte{0x00, 0xe0, 0x12, 0x00, 0x55}
	prog := NewProgram(image)

	expected := []Opcode{
		{LineNo: 1, Address: 0x200, Words: []string{"cls"}, Bytes: []byte{0x00, 0xe0}},
		{LineNo: 2, Address: 0x202, Words: []string{"jp", "0x200"}, Bytes: []byte{0x12, 0x00}},
		{LineNo: 3, Address: 0x204, Words: []string{".byte", "0x55"}, Bytes: []byte{0x55}, Data: true},
	}
	assert.Equal(expected, prog.Opcodes)
	assert.Equal(image, prog.Binary())

	assert.Equal(2, prog.Debug(0x203).LineNo)
	assert.Equal(0, len(NewProgram(nil).Opcodes))
}
