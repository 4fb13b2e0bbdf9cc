//go:build headless

package host

import (
	"time"

	"github.com/ezrec/chip8/io"
)

// Beeper is silent in headless builds.
type Beeper struct{}

var _ io.Audio = (*Beeper)(nil)

// NewBeeper always fails in headless builds.
func NewBeeper(frequency float64, duration time.Duration) (bp *Beeper, err error) {
	_, err = newTone(frequency, duration)
	if err != nil {
		return
	}
	err = ErrHeadless
	return
}

func (bp *Beeper) Beep() {
}

func (bp *Beeper) Close() error {
	return nil
}
