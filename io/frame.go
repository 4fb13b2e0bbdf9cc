package io

import (
	"strings"
)

const (
	FRAME_WIDTH  = 64                         // Display width in pixels.
	FRAME_HEIGHT = 32                         // Display height in pixels.
	FRAME_PIXELS = FRAME_WIDTH * FRAME_HEIGHT // Total pixels.
)

// Frame is a row-major snapshot of the monochrome display.
// Pixel (x, y) lives at index x + y*FRAME_WIDTH.
type Frame [FRAME_PIXELS]bool

// At returns the pixel at (x, y). Coordinates wrap.
func (fr *Frame) At(x, y int) bool {
	return fr[index(x, y)]
}

// Set sets the pixel at (x, y). Coordinates wrap.
func (fr *Frame) Set(x, y int, on bool) {
	fr[index(x, y)] = on
}

// Lit returns the number of set pixels.
func (fr *Frame) Lit() (count int) {
	for _, on := range fr {
		if on {
			count++
		}
	}
	return
}

// String renders the frame as rows of '#' and '.'.
func (fr *Frame) String() string {
	var sb strings.Builder
	sb.Grow((FRAME_WIDTH + 1) * FRAME_HEIGHT)
	for y := range FRAME_HEIGHT {
		for x := range FRAME_WIDTH {
			if fr.At(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func index(x, y int) int {
	x %= FRAME_WIDTH
	if x < 0 {
		x += FRAME_WIDTH
	}
	y %= FRAME_HEIGHT
	if y < 0 {
		y += FRAME_HEIGHT
	}
	return x + y*FRAME_WIDTH
}
