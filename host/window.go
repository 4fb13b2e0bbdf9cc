//go:build !headless

package host

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ezrec/chip8/io"
)

// hostKeys maps key names to ebiten keys.
var hostKeys = map[string]ebiten.Key{
	"0": ebiten.KeyDigit0, "1": ebiten.KeyDigit1, "2": ebiten.KeyDigit2,
	"3": ebiten.KeyDigit3, "4": ebiten.KeyDigit4, "5": ebiten.KeyDigit5,
	"6": ebiten.KeyDigit6, "7": ebiten.KeyDigit7, "8": ebiten.KeyDigit8,
	"9": ebiten.KeyDigit9,
	"a": ebiten.KeyA, "b": ebiten.KeyB, "c": ebiten.KeyC, "d": ebiten.KeyD,
	"e": ebiten.KeyE, "f": ebiten.KeyF, "g": ebiten.KeyG, "h": ebiten.KeyH,
	"i": ebiten.KeyI, "j": ebiten.KeyJ, "k": ebiten.KeyK, "l": ebiten.KeyL,
	"m": ebiten.KeyM, "n": ebiten.KeyN, "o": ebiten.KeyO, "p": ebiten.KeyP,
	"q": ebiten.KeyQ, "r": ebiten.KeyR, "s": ebiten.KeyS, "t": ebiten.KeyT,
	"u": ebiten.KeyU, "v": ebiten.KeyV, "w": ebiten.KeyW, "x": ebiten.KeyX,
	"y": ebiten.KeyY, "z": ebiten.KeyZ,
}

// Window is an ebiten game that shows frames and captures keypad keys.
// Escape or closing the window closes Done.
type Window struct {
	Title   string
	Scale   int
	Palette io.Palette

	keys   map[ebiten.Key]uint8
	mutex  sync.Mutex
	pixels []byte
	image  *ebiten.Image
	edges  edgeQueue

	done      chan struct{}
	closeOnce sync.Once
}

var _ io.Display = (*Window)(nil)
var _ io.Input = (*Window)(nil)

// NewWindow creates a window for a keymap. Keys without an ebiten
// equivalent are ignored.
func NewWindow(title string, scale int, palette io.Palette, keymap io.Keymap) (win *Window, err error) {
	if scale <= 0 {
		err = ErrScale
		return
	}

	err = keymap.Validate()
	if err != nil {
		return
	}

	win = &Window{
		Title:   title,
		Scale:   scale,
		Palette: palette,
		keys:    make(map[ebiten.Key]uint8, len(keymap)),
		done:    make(chan struct{}),
	}

	for name, key := range keymap {
		ek, ok := hostKeys[name]
		if ok {
			win.keys[ek] = key
		}
	}

	var blank io.Frame
	win.pixels = palette.RenderPixels(&blank, nil)

	return
}

// Run shows the window until it is closed. It must be called from the
// main goroutine.
func (win *Window) Run() (err error) {
	ebiten.SetWindowSize(io.FRAME_WIDTH*win.Scale, io.FRAME_HEIGHT*win.Scale)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	defer win.Close()

	err = ebiten.RunGame(win)

	return
}

// Done is closed when the window is closed.
func (win *Window) Done() <-chan struct{} {
	return win.done
}

// Close requests the window to close.
func (win *Window) Close() {
	win.closeOnce.Do(func() {
		close(win.done)
	})
}

// Present implements io.Display.
func (win *Window) Present(frame io.Frame) error {
	win.mutex.Lock()
	win.pixels = win.Palette.RenderPixels(&frame, win.pixels)
	win.mutex.Unlock()
	return nil
}

// Poll implements io.Input.
func (win *Window) Poll() []io.KeyEdge {
	return win.edges.drain()
}

func (win *Window) closed() bool {
	select {
	case <-win.done:
		return true
	default:
		return false
	}
}

// Update implements ebiten.Game.
func (win *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || win.closed() {
		win.Close()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		win.Close()
		return ebiten.Termination
	}

	for ek, key := range win.keys {
		if inpututil.IsKeyJustPressed(ek) {
			win.edges.push(key, true)
		}
		if inpututil.IsKeyJustReleased(ek) {
			win.edges.push(key, false)
		}
	}

	return nil
}

// Draw implements ebiten.Game.
func (win *Window) Draw(screen *ebiten.Image) {
	if win.image == nil {
		win.image = ebiten.NewImage(io.FRAME_WIDTH, io.FRAME_HEIGHT)
	}

	win.mutex.Lock()
	win.image.WritePixels(win.pixels)
	win.mutex.Unlock()

	screen.DrawImage(win.image, nil)
}

// Layout implements ebiten.Game.
func (win *Window) Layout(_, _ int) (int, int) {
	return io.FRAME_WIDTH, io.FRAME_HEIGHT
}
