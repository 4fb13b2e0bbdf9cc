package host

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrScale        = errors.New(f("scale must be positive"))
	ErrTone         = errors.New(f("tone must be positive"))
	ErrTerminalSize = errors.New(f("terminal too small"))
	ErrHeadless     = errors.New(f("not available in headless builds"))
)
