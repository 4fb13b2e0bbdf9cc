package io

// Speaker is an in-memory Audio that counts beeps.
type Speaker struct {
	Beeps int
}

var _ Audio = (*Speaker)(nil)

// Beep counts the beep.
func (sp *Speaker) Beep() {
	sp.Beeps++
}
