package io

// Screen is an in-memory Display that keeps the most recent frame.
type Screen struct {
	Frame    Frame // Last presented frame.
	Presents int   // Number of Present calls.
}

var _ Display = (*Screen)(nil)

// Present records the frame.
func (sc *Screen) Present(frame Frame) error {
	sc.Frame = frame
	sc.Presents++
	return nil
}

// Reset forgets all presented frames.
func (sc *Screen) Reset() {
	clear(sc.Frame[:])
	sc.Presents = 0
}
