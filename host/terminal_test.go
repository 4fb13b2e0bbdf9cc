package host

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/io"
)

func newTestTerminal(t *testing.T) (tm *Terminal, out *bytes.Buffer) {
	tm, err := NewTerminal(io.DefaultKeymap)
	if err != nil {
		t.Fatal(err)
	}
	out = &bytes.Buffer{}
	tm.out = out
	return
}

func TestTerminal_Keys(t *testing.T) {
	assert := assert.New(t)

	tm, _ := newTestTerminal(t)
	now := time.Now()

	tm.key('w', now)
	tm.key('W', now.Add(50*time.Millisecond))
	tm.key('?', now)
	assert.Equal([]io.KeyEdge{{Key: 0x5, Down: true}}, tm.edges.drain())

	// Repeats keep the key held.
	tm.expire(now.Add(KEY_HOLD))
	assert.Nil(tm.edges.drain())

	tm.expire(now.Add(50*time.Millisecond + KEY_HOLD))
	assert.Equal([]io.KeyEdge{{Key: 0x5, Down: false}}, tm.edges.drain())

	tm.key('w', now.Add(time.Second))
	assert.Equal([]io.KeyEdge{{Key: 0x5, Down: true}}, tm.edges.drain())
}

func TestTerminal_Quit(t *testing.T) {
	assert := assert.New(t)

	tm, _ := newTestTerminal(t)

	select {
	case <-tm.Done():
		t.Fatal("closed early")
	default:
	}

	tm.key(0x1b, time.Now())
	_, open := <-tm.Done()
	assert.False(open)

	// Closing twice is harmless.
	tm.Close()
}

func TestTerminal_Present(t *testing.T) {
	assert := assert.New(t)

	tm, out := newTestTerminal(t)

	var frame io.Frame
	frame.Set(0, 0, true)

	assert.NoError(tm.Present(frame))
	text := out.String()
	assert.True(strings.HasPrefix(text, termHome+"▀"))
	assert.Equal(io.FRAME_HEIGHT/2, strings.Count(text, "\r\n"))
}

func TestNewTerminal_BadKeymap(t *testing.T) {
	assert := assert.New(t)

	_, err := NewTerminal(io.Keymap{"up": 1})
	assert.ErrorIs(err, io.ErrKeyName)
}
