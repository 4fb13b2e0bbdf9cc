package host

import (
	goio "io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/chip8/io"
)

const (
	KEY_HOLD = 150 * time.Millisecond // How long a terminal key stays down.

	termClear      = "\033[2J"
	termHome       = "\033[H"
	termHideCursor = "\033[?25l"
	termShowCursor = "\033[?25h"
)

// Terminal draws frames with half-block characters and reads keys from
// a raw mode terminal. Terminals only report key presses, so a key is
// released once Hold passes without it repeating. Escape or Ctrl-C
// closes Done.
type Terminal struct {
	Hold time.Duration

	keymap io.Keymap
	in     *os.File
	out    goio.Writer
	state  *term.State

	mutex sync.Mutex
	held  map[uint8]time.Time
	edges edgeQueue

	done      chan struct{}
	closeOnce sync.Once
}

var _ io.Display = (*Terminal)(nil)
var _ io.Input = (*Terminal)(nil)

// NewTerminal creates a terminal frontend on stdin and stdout.
func NewTerminal(keymap io.Keymap) (tm *Terminal, err error) {
	err = keymap.Validate()
	if err != nil {
		return
	}

	tm = &Terminal{
		Hold:   KEY_HOLD,
		keymap: keymap,
		in:     os.Stdin,
		out:    os.Stdout,
		held:   make(map[uint8]time.Time, io.KEY_COUNT),
		done:   make(chan struct{}),
	}

	return
}

// Start puts the terminal in raw mode and begins reading keys.
func (tm *Terminal) Start() (err error) {
	fd := int(tm.in.Fd())

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	if width < io.FRAME_WIDTH || height < io.FRAME_HEIGHT/2 {
		err = ErrTerminalSize
		return
	}

	tm.state, err = term.MakeRaw(fd)
	if err != nil {
		return
	}

	_, err = goio.WriteString(tm.out, termClear+termHideCursor)
	if err != nil {
		return
	}

	go tm.read()

	return
}

// Stop restores the terminal.
func (tm *Terminal) Stop() (err error) {
	tm.Close()

	if tm.state != nil {
		err = term.Restore(int(tm.in.Fd()), tm.state)
		tm.state = nil
	}

	goio.WriteString(tm.out, termShowCursor+"\r\n")

	return
}

// Done is closed when the user asks to quit.
func (tm *Terminal) Done() <-chan struct{} {
	return tm.done
}

// Close closes Done.
func (tm *Terminal) Close() {
	tm.closeOnce.Do(func() {
		close(tm.done)
	})
}

// read forwards stdin bytes until the terminal closes.
func (tm *Terminal) read() {
	buf := make([]byte, 16)
	for {
		n, err := tm.in.Read(buf)
		for _, b := range buf[:n] {
			tm.key(b, time.Now())
		}
		if err != nil {
			tm.Close()
			return
		}
		select {
		case <-tm.done:
			return
		default:
		}
	}
}

// key handles one input byte received at now.
func (tm *Terminal) key(b byte, now time.Time) {
	switch b {
	case 0x03, 0x1b: // Ctrl-C, Escape
		tm.Close()
		return
	}

	key, ok := tm.keymap.Lookup(strings.ToLower(string(rune(b))))
	if !ok {
		return
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	_, down := tm.held[key]
	if !down {
		tm.edges.push(key, true)
	}
	tm.held[key] = now
}

// expire releases keys not seen within Hold of now.
func (tm *Terminal) expire(now time.Time) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	for key, seen := range tm.held {
		if now.Sub(seen) >= tm.Hold {
			delete(tm.held, key)
			tm.edges.push(key, false)
		}
	}
}

// Poll implements io.Input.
func (tm *Terminal) Poll() []io.KeyEdge {
	tm.expire(time.Now())
	return tm.edges.drain()
}

// Present implements io.Display.
func (tm *Terminal) Present(frame io.Frame) (err error) {
	_, err = goio.WriteString(tm.out, termHome+RenderBlocks(&frame))
	return
}
