package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what happened during an editing session. Counters are
// updated from the event loop and from translate and save goroutines.
type Metrics struct {
	events       atomic.Uint64
	renders      atomic.Uint64
	renderNs     atomic.Int64
	moves        atomic.Uint64
	movedRows    atomic.Uint64
	translations atomic.Uint64
	failures     atomic.Uint64
	saves        atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent counts one handled terminal event.
func (m *Metrics) RecordEvent() {
	m.events.Add(1)
}

// RecordRender records how long one frame took to draw.
func (m *Metrics) RecordRender(d time.Duration) {
	m.renders.Add(1)
	m.renderNs.Add(d.Nanoseconds())
}

// RecordMove counts a committed reorder of n rows.
func (m *Metrics) RecordMove(n int) {
	m.moves.Add(1)
	m.movedRows.Add(uint64(n))
}

// RecordTranslation counts one translate request.
func (m *Metrics) RecordTranslation(err error) {
	m.translations.Add(1)
	if err != nil {
		m.failures.Add(1)
	}
}

// RecordSave counts a successful save.
func (m *Metrics) RecordSave() {
	m.saves.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Events       uint64
	Renders      uint64
	AvgRender    time.Duration
	Moves        uint64
	MovedRows    uint64
	Translations uint64
	Failures     uint64
	Saves        uint64
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Events:       m.events.Load(),
		Renders:      m.renders.Load(),
		Moves:        m.moves.Load(),
		MovedRows:    m.movedRows.Load(),
		Translations: m.translations.Load(),
		Failures:     m.failures.Load(),
		Saves:        m.saves.Load(),
	}
	if s.Renders > 0 {
		s.AvgRender = time.Duration(m.renderNs.Load() / int64(s.Renders))
	}
	return s
}
