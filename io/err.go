package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Rom errors
	ErrRomEmpty = errors.New(f("rom empty"))

	// Palette errors
	ErrColor = errors.New(f("colour must be #rrggbb"))

	// Keymap errors
	ErrKeyInvalid = errors.New(f("key index invalid"))
	ErrKeyName    = errors.New(f("key name invalid"))
)

// ErrRom indicates the ROM image that failed to load.
type ErrRom struct {
	Name string
	Err  error
}

func (err *ErrRom) Error() string {
	return f("rom %v: %v", err.Name, err.Err)
}

func (err *ErrRom) Unwrap() error {
	return err.Err
}
