package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerLapsInStartOrder(t *testing.T) {
	tm := NewTimer()
	a := tm.Start("parse")
	a.Stop()
	b := tm.Start("expand")
	b.Stop()

	laps := tm.Laps()
	if len(laps) != 2 || laps[0].Name != "parse" || laps[1].Name != "expand" {
		t.Fatalf("laps = %v", laps)
	}
	if tm.Total() != laps[0].Dur+laps[1].Dur {
		t.Fatalf("total = %v, want %v", tm.Total(), laps[0].Dur+laps[1].Dur)
	}
}

func TestTimerStopIsIdempotent(t *testing.T) {
	tm := NewTimer()
	lap := tm.Start("parse")
	lap.Stop()
	first := lap.Dur
	time.Sleep(time.Millisecond)
	lap.Stop()
	if lap.Dur != first {
		t.Fatalf("second stop changed duration: %v -> %v", first, lap.Dur)
	}
}

func TestTimerUnstoppedLapIsZero(t *testing.T) {
	tm := NewTimer()
	tm.Start("parse")
	if tm.Total() != 0 {
		t.Fatalf("total = %v, want 0", tm.Total())
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.Start("parse").Stop()
	tm.Start("codegen").Stop()

	out := tm.Summary()
	if !strings.HasPrefix(out, "timings:\n") {
		t.Fatalf("summary missing header: %q", out)
	}
	for _, name := range []string{"parse", "codegen", "total"} {
		if !strings.Contains(out, name) {
			t.Fatalf("summary missing %q: %q", name, out)
		}
	}
	if !strings.HasSuffix(out, " ms\n") {
		t.Fatalf("summary must end with the total line: %q", out)
	}
}
