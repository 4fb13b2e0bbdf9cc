package cpu

// Timers is the delay and sound countdown pair. Both count down once
// per tick and stop at zero.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements both timers. It reports a beep when the sound timer
// expires on this tick.
func (tm *Timers) Tick() (beep bool) {
	if tm.Delay > 0 {
		tm.Delay--
	}
	if tm.Sound > 0 {
		beep = tm.Sound == 1
		tm.Sound--
	}
	return
}

// Reset zeros both timers.
func (tm *Timers) Reset() {
	tm.Delay = 0
	tm.Sound = 0
}
