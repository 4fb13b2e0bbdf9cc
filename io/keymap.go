package io

import (
	"maps"
	"strings"
)

const KEY_COUNT = 16 // Number of keypad keys.

// Keymap maps logical host key names (single characters, lower case)
// to keypad indexes.
type Keymap map[string]uint8

// DefaultKeymap is the four-row layout
//
//	1 2 3 4      0 1 2 3
//	q w e r  ->  4 5 6 7
//	a s d f      8 9 a b
//	z x c v      c d e f
var DefaultKeymap = Keymap{
	"1": 0x0, "2": 0x1, "3": 0x2, "4": 0x3,
	"q": 0x4, "w": 0x5, "e": 0x6, "r": 0x7,
	"a": 0x8, "s": 0x9, "d": 0xa, "f": 0xb,
	"z": 0xc, "x": 0xd, "c": 0xe, "v": 0xf,
}

// Lookup finds the keypad index for a host key name.
func (km Keymap) Lookup(name string) (key uint8, ok bool) {
	key, ok = km[strings.ToLower(name)]
	return
}

// Validate checks that every entry names a single character and a
// keypad index in range.
func (km Keymap) Validate() (err error) {
	for name, key := range km {
		if len([]rune(name)) != 1 {
			err = &ErrKey{Name: name, Err: ErrKeyName}
			return
		}
		if key >= KEY_COUNT {
			err = &ErrKey{Name: name, Err: ErrKeyInvalid}
			return
		}
	}
	return
}

// Merge returns a copy of the keymap with the overrides applied.
func (km Keymap) Merge(overrides Keymap) Keymap {
	merged := maps.Clone(km)
	if merged == nil {
		merged = Keymap{}
	}
	for name, key := range overrides {
		merged[strings.ToLower(name)] = key
	}
	return merged
}

// ErrKey indicates the keymap entry at fault.
type ErrKey struct {
	Name string
	Err  error
}

func (err *ErrKey) Error() string {
	return f("key '%v' %v", err.Name, err.Err)
}

func (err *ErrKey) Unwrap() error {
	return err.Err
}
