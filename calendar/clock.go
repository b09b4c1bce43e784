package calendar

import "time"

// =============================================================================
// CLOCK - Injectable "now" source
// =============================================================================

// Clock supplies the current time. Everything time-dependent in this
// engine reads "now" through a Clock, never from time.Now directly -
// that is what makes preset resolution reproducible across repeated
// calls and across server/client boundaries.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the ambient current time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the instant it was constructed with.
// time.Time has value semantics, so callers receive a copy and cannot
// mutate shared state through it.
type FixedClock struct {
	at time.Time
}

// NewFixedClock creates a clock pinned to at.
func NewFixedClock(at time.Time) FixedClock {
	return FixedClock{at: at}
}

func (c FixedClock) Now() time.Time { return c.at }
