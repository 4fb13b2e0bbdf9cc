package io

import (
	"image/color"
	"strconv"
	"strings"
)

const (
	DEFAULT_FOREGROUND = "#33ff66" // Lit pixel colour.
	DEFAULT_BACKGROUND = "#000000" // Unlit pixel colour.
)

// Palette holds the two display colours.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// DefaultPalette returns green on black.
func DefaultPalette() Palette {
	fg, _ := ParseColor(DEFAULT_FOREGROUND)
	bg, _ := ParseColor(DEFAULT_BACKGROUND)
	return Palette{Foreground: fg, Background: bg}
}

// ParseColor parses a "#rrggbb" colour.
func ParseColor(text string) (rgba color.RGBA, err error) {
	hex, ok := strings.CutPrefix(text, "#")
	if !ok || len(hex) != 6 {
		err = ErrColor
		return
	}

	value, perr := strconv.ParseUint(hex, 16, 32)
	if perr != nil {
		err = ErrColor
		return
	}

	rgba = color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xff,
	}

	return
}

// RenderPixels converts a frame into RGBA bytes, one pixel per frame
// pixel, row-major.
func (pal Palette) RenderPixels(frame *Frame, pixels []byte) []byte {
	if len(pixels) != FRAME_PIXELS*4 {
		pixels = make([]byte, FRAME_PIXELS*4)
	}

	for n, lit := range frame {
		c := pal.Background
		if lit {
			c = pal.Foreground
		}
		pixels[n*4+0] = c.R
		pixels[n*4+1] = c.G
		pixels[n*4+2] = c.B
		pixels[n*4+3] = c.A
	}

	return pixels
}
