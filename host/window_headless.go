//go:build headless

package host

import (
	"github.com/ezrec/chip8/io"
)

// Window is unavailable in headless builds.
type Window struct{}

var _ io.Display = (*Window)(nil)
var _ io.Input = (*Window)(nil)

// NewWindow always fails in headless builds.
func NewWindow(title string, scale int, palette io.Palette, keymap io.Keymap) (win *Window, err error) {
	err = ErrHeadless
	return
}

func (win *Window) Run() error {
	return ErrHeadless
}

func (win *Window) Done() <-chan struct{} {
	return nil
}

func (win *Window) Close() {
}

func (win *Window) Present(frame io.Frame) error {
	return nil
}

func (win *Window) Poll() []io.KeyEdge {
	return nil
}
