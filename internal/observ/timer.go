// Package observ holds lightweight timing helpers for compile runs.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Lap is one timed stretch of a run. Stop is idempotent; an unstopped
// lap reports zero duration.
type Lap struct {
	Name  string
	Dur   time.Duration
	start time.Time
	done  bool
}

func (l *Lap) Stop() {
	if l.done {
		return
	}
	l.Dur = time.Since(l.start)
	l.done = true
}

// Timer accumulates laps over one compile invocation, in start order.
type Timer struct {
	laps []*Lap
}

func NewTimer() *Timer { return &Timer{} }

// Start opens a lap and returns its handle. The caller stops it when
// the stretch ends.
func (t *Timer) Start(name string) *Lap {
	lap := &Lap{Name: name, start: time.Now()}
	t.laps = append(t.laps, lap)
	return lap
}

// Laps returns the recorded laps in start order.
func (t *Timer) Laps() []*Lap { return t.laps }

// Total sums the stopped laps.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, lap := range t.laps {
		total += lap.Dur
	}
	return total
}

// Summary renders per-lap wall time in milliseconds for --timings.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, lap := range t.laps {
		fmt.Fprintf(&b, "  %-12s %8.2f ms\n", lap.Name, millis(lap.Dur))
	}
	fmt.Fprintf(&b, "  %-12s %8.2f ms\n", "total", millis(t.Total()))
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
