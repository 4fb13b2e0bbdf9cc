package cpu

import (
	"github.com/ezrec/chip8/io"
)

// Keypad is the pressed state of the sixteen keys 0x0-0xF.
// Key indexes are masked to 4 bits.
type Keypad [io.KEY_COUNT]bool

// Press marks a key down.
func (kp *Keypad) Press(key uint8) {
	kp[key&0xf] = true
}

// Release marks a key up.
func (kp *Keypad) Release(key uint8) {
	kp[key&0xf] = false
}

// Apply a key edge.
func (kp *Keypad) Apply(edge io.KeyEdge) {
	kp[edge.Key&0xf] = edge.Down
}

// Pressed reports whether a key is down.
func (kp *Keypad) Pressed(key uint8) bool {
	return kp[key&0xf]
}

// Lowest returns the lowest-indexed pressed key.
func (kp *Keypad) Lowest() (key uint8, ok bool) {
	for n, down := range kp {
		if down {
			key = uint8(n)
			ok = true
			return
		}
	}
	return
}

// Reset releases every key.
func (kp *Keypad) Reset() {
	clear(kp[:])
}
