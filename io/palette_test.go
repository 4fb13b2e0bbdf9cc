package io

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseColor("#12abEF")
	assert.NoError(err)
	assert.Equal(color.RGBA{R: 0x12, G: 0xab, B: 0xef, A: 0xff}, c)

	for _, bad := range []string{"", "12abef", "#12abe", "#12abefa", "#12abeg", "#+12abe"} {
		_, err = ParseColor(bad)
		assert.ErrorIs(err, ErrColor, bad)
	}
}

func TestDefaultPalette(t *testing.T) {
	assert := assert.New(t)

	pal := DefaultPalette()
	assert.Equal(color.RGBA{R: 0x33, G: 0xff, B: 0x66, A: 0xff}, pal.Foreground)
	assert.Equal(color.RGBA{A: 0xff}, pal.Background)
}

func TestRenderPixels(t *testing.T) {
	assert := assert.New(t)

	pal := DefaultPalette()

	var frame Frame
	frame.Set(1, 0, true)
	frame.Set(0, 1, true)

	pixels := pal.RenderPixels(&frame, nil)
	assert.Equal(FRAME_PIXELS*4, len(pixels))

	bg := []byte{0x00, 0x00, 0x00, 0xff}
	fg := []byte{0x33, 0xff, 0x66, 0xff}
	assert.Equal(bg, pixels[0:4])
	assert.Equal(fg, pixels[4:8])
	assert.Equal(fg, pixels[FRAME_WIDTH*4:FRAME_WIDTH*4+4])

	// The buffer is reused when it is the right size.
	again := pal.RenderPixels(&Frame{}, pixels)
	assert.Same(&pixels[0], &again[0])
	assert.Equal(bg, again[4:8])
}
