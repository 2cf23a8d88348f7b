package observ

import (
	"strings"
	"testing"
	"time"

	"unistat/internal/timing"
)

type fakeSource struct {
	wall time.Time
	proc time.Duration
}

func (f *fakeSource) Now() timing.Snapshot {
	return timing.Snapshot{Wall: f.wall, Process: f.proc}
}

func (f *fakeSource) advance(d time.Duration) {
	f.wall = f.wall.Add(d)
	f.proc += d
}

func TestTimerPhases(t *testing.T) {
	src := &fakeSource{wall: time.Unix(0, 0)}
	tm := NewTimer(src)

	outer := tm.Begin("Running Program", "prog")
	src.advance(100 * time.Millisecond)
	inner := tm.Begin("Building Target", "aux")
	src.advance(200 * time.Millisecond)
	tm.End(inner)
	src.advance(50 * time.Millisecond)
	tm.End(outer)

	readings := tm.Readings()
	if len(readings) != 4 {
		t.Fatalf("got %d readings, want 4", len(readings))
	}
	if readings[0].Label != "Running Program/prog.wall" {
		t.Fatalf("unexpected first label %q", readings[0].Label)
	}
	if readings[0].Seconds != 0.35 {
		t.Fatalf("outer wall = %v, want 0.35", readings[0].Seconds)
	}
	if readings[2].Label != "Building Target/aux.wall" || readings[2].Seconds != 0.2 {
		t.Fatalf("unexpected inner reading %+v", readings[2])
	}
}

func TestTimerRunningPhasesExcluded(t *testing.T) {
	src := &fakeSource{wall: time.Unix(0, 0)}
	tm := NewTimer(src)

	tm.Begin("G", "running")
	if got := len(tm.Readings()); got != 0 {
		t.Fatalf("running phase leaked %d readings", got)
	}

	tm.StopAll()
	if got := len(tm.Readings()); got != 2 {
		t.Fatalf("StopAll left %d readings, want 2", got)
	}
	// StopAll again must not disturb anything.
	tm.StopAll()
	if got := len(tm.Readings()); got != 2 {
		t.Fatalf("second StopAll changed readings to %d", got)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer(&fakeSource{})
	tm.End(-1)
	tm.End(5) // no phases yet; must not panic
}

func TestTimerSummary(t *testing.T) {
	src := &fakeSource{wall: time.Unix(0, 0)}
	tm := NewTimer(src)
	idx := tm.Begin("G", "n")
	src.advance(10 * time.Millisecond)
	tm.End(idx)

	s := tm.Summary()
	if !strings.Contains(s, "G/n") || !strings.Contains(s, "total") {
		t.Fatalf("summary missing entries:\n%s", s)
	}
}
