package host

import (
	"strings"

	"github.com/ezrec/chip8/io"
)

// RenderBlocks draws a frame with half-block characters, two pixel rows
// per text line. Lines end in "\r\n" for raw mode terminals.
func RenderBlocks(frame *io.Frame) string {
	var sb strings.Builder

	for y := 0; y < io.FRAME_HEIGHT; y += 2 {
		for x := range io.FRAME_WIDTH {
			top, bottom := frame.At(x, y), frame.At(x, y+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}
