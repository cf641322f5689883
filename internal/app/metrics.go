package app

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/scrubbing/internal/scrub"
)

// Metrics counts scrub activity across every binding. It is attached to
// each binding as a trailing adapter.
type Metrics struct {
	gestures atomic.Uint64
	changes  atomic.Uint64
	aborted  atomic.Uint64
	last     atomic.Pointer[string]
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Gestures uint64
	Changes  uint64
	Aborted  uint64
	Last     string
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Snapshot returns the current counts.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Gestures: m.gestures.Load(),
		Changes:  m.changes.Load(),
		Aborted:  m.aborted.Load(),
	}
	if last := m.last.Load(); last != nil {
		s.Last = *last
	}
	return s
}

// RecordAbort counts a gesture refused by its primary adapter.
func (m *Metrics) RecordAbort() {
	m.aborted.Add(1)
}

// String formats the snapshot for the status line.
func (s MetricsSnapshot) String() string {
	out := fmt.Sprintf("gestures %d  changes %d", s.Gestures, s.Changes)
	if s.Aborted > 0 {
		out += fmt.Sprintf("  aborted %d", s.Aborted)
	}
	if s.Last != "" {
		out += "  last " + s.Last
	}
	return out
}

func (m *Metrics) Init(*scrub.Binding) {}

// Start counts a start. Wheel steps count as gestures too.
func (m *Metrics) Start(b *scrub.Binding) (int, error) {
	m.gestures.Add(1)
	id := b.Target().ID()
	m.last.Store(&id)
	return 0, nil
}

func (m *Metrics) Change(*scrub.Binding, int, int) {
	m.changes.Add(1)
}

func (m *Metrics) End(*scrub.Binding) {}
