package host

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

const (
	SAMPLE_RATE   = 44100                  // Output sample rate in Hz.
	BEEP_DURATION = 100 * time.Millisecond // Length of one beep.
	TONE_VOLUME   = 0.25                   // Square wave amplitude.
)

// tone is an io.Reader producing a mono float32 little-endian square
// wave while a beep is sounding, and silence otherwise.
type tone struct {
	mutex     sync.Mutex
	period    int // Samples per wave period.
	length    int // Samples per beep.
	remaining int // Samples left in the current beep.
	phase     int
}

func newTone(frequency float64, duration time.Duration) (tn *tone, err error) {
	if !(frequency > 0) {
		err = ErrTone
		return
	}

	tn = &tone{
		period: max(2, int(SAMPLE_RATE/frequency)),
		length: int(duration.Seconds() * SAMPLE_RATE),
	}

	return
}

// start (re)starts a beep.
func (tn *tone) start() {
	tn.mutex.Lock()
	tn.remaining = tn.length
	tn.mutex.Unlock()
}

// Read fills p with whole samples.
func (tn *tone) Read(p []byte) (n int, err error) {
	tn.mutex.Lock()
	defer tn.mutex.Unlock()

	for n+4 <= len(p) {
		var sample float32
		if tn.remaining > 0 {
			tn.remaining--
			if tn.phase < tn.period/2 {
				sample = TONE_VOLUME
			} else {
				sample = -TONE_VOLUME
			}
			tn.phase = (tn.phase + 1) % tn.period
		}
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(sample))
		n += 4
	}

	return
}
