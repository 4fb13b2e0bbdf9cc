//go:build !headless

package host

import (
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ezrec/chip8/io"
)

// Beeper plays a square wave tone on each beep.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *tone
}

var _ io.Audio = (*Beeper)(nil)

// NewBeeper opens the audio device. Only one Beeper may exist per process.
func NewBeeper(frequency float64, duration time.Duration) (bp *Beeper, err error) {
	tn, err := newTone(frequency, duration)
	if err != nil {
		return
	}

	op := &oto.NewContextOptions{
		SampleRate:   SAMPLE_RATE,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready

	bp = &Beeper{
		ctx:  ctx,
		tone: tn,
	}
	bp.player = ctx.NewPlayer(tn)
	bp.player.Play()

	return
}

// Beep starts the tone.
func (bp *Beeper) Beep() {
	bp.tone.start()
}

// Close stops playback.
func (bp *Beeper) Close() (err error) {
	if bp.player != nil {
		err = bp.player.Close()
		bp.player = nil
	}
	return
}
