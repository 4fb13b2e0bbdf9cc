package cpu

import (
	"github.com/ezrec/chip8/io"
)

const (
	SCREEN_WIDTH  = io.FRAME_WIDTH  // Display width in pixels.
	SCREEN_HEIGHT = io.FRAME_HEIGHT // Display height in pixels.
	SPRITE_WIDTH  = 8               // Sprite row width in pixels.
)

// Display is the 64x32 monochrome framebuffer. It is only changed by
// Clear and Draw.
type Display struct {
	frame io.Frame
}

// Clear turns every pixel off.
func (dp *Display) Clear() {
	clear(dp.frame[:])
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates wrap.
func (dp *Display) Pixel(x, y int) bool {
	return dp.frame.At(x, y)
}

// Draw XORs a sprite into the framebuffer with its top-left corner at
// (x, y). Each sprite byte is one row, most significant bit leftmost.
// Pixels wrap around both screen edges. Collision reports whether any
// lit pixel was turned off.
func (dp *Display) Draw(x, y uint8, sprite []byte) (collision bool) {
	for row, bits := range sprite {
		for col := range SPRITE_WIDTH {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := int(x) + col
			py := int(y) + row
			lit := dp.frame.At(px, py)
			if lit {
				collision = true
			}
			dp.frame.Set(px, py, !lit)
		}
	}
	return
}

// Snapshot returns a copy of the framebuffer.
func (dp *Display) Snapshot() io.Frame {
	return dp.frame
}
