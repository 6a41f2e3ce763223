package mouse

import "time"

// clickTracker counts rapid clicks at roughly the same spot. A double
// click on a cell opens it for editing.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   Position
	lastTime  time.Time
	lastCount int
}

func newClickTracker(maxTime time.Duration, maxDistance int) *clickTracker {
	return &clickTracker{
		maxTime:     maxTime,
		maxDistance: maxDistance,
	}
}

// recordClick records a click and returns the click count, which wraps
// to 1 after a double click. A zero timestamp is replaced by time.Now().
func (t *clickTracker) recordClick(pos Position, timestamp time.Time) int {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if t.follows(pos, timestamp) && t.lastCount < 2 {
		t.lastCount++
	} else {
		t.lastCount = 1
	}
	t.lastPos = pos
	t.lastTime = timestamp
	return t.lastCount
}

func (t *clickTracker) follows(pos Position, timestamp time.Time) bool {
	if t.lastCount == 0 {
		return false
	}
	// Negative elapsed time is clock skew; start over.
	elapsed := timestamp.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}
	return pos.Distance(t.lastPos) <= t.maxDistance
}

func (t *clickTracker) reset() {
	*t = clickTracker{maxTime: t.maxTime, maxDistance: t.maxDistance}
}
