package io

import (
	"io/fs"
)

// LoadRom reads a raw program image from a filesystem.
// The image has no header; it is loaded verbatim by the machine.
func LoadRom(fsys fs.FS, name string) (data []byte, err error) {
	data, err = fs.ReadFile(fsys, name)
	if err != nil {
		err = &ErrRom{Name: name, Err: err}
		return
	}

	if len(data) == 0 {
		err = &ErrRom{Name: name, Err: ErrRomEmpty}
		data = nil
		return
	}

	return
}
