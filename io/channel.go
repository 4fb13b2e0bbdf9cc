// Package io provides the collaborator boundary of the CHIP-8 machine.
// The machine core talks to the outside world through three narrow
// interfaces: a Display that receives frame snapshots, an Input that
// yields key-down/key-up edges, and an Audio sink that receives beeps.
// In-memory models (Screen, Script, Speaker) stand in for real devices.
package io

// Display receives a read-only snapshot of the framebuffer whenever
// the machine reports that the display changed.
type Display interface {
	// Present shows the frame.
	Present(frame Frame) error
}

// Input yields keypad edges. It is polled once per tick.
type Input interface {
	// Poll returns the key edges observed since the previous poll,
	// oldest first.
	Poll() []KeyEdge
}

// Audio receives the fire-and-forget sound timer beep.
type Audio interface {
	// Beep starts the tone.
	Beep()
}

// KeyEdge is a single key transition.
type KeyEdge struct {
	Key  uint8 // Keypad index, 0x0 - 0xF.
	Down bool  // True on key-down, false on key-up.
}
