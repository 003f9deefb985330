package gmm

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests and fixture generators can
// freeze ComputedAt timestamps. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for result stamping. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
