package observ

import (
	"fmt"
	"time"

	"unistat/internal/timing"
)

// Phase records one group-qualified measurement taken against a Timer's
// time source.
type Phase struct {
	Group   string
	Name    string
	Start   timing.Snapshot
	Wall    time.Duration
	Process time.Duration
	running bool
}

// Timer tracks a set of named phases against one time source. Phases may
// overlap; a phase is measured from Begin until End.
type Timer struct {
	src    timing.Source
	phases []Phase
}

// NewTimer creates an empty Timer reading from src. A nil src falls back
// to the system clock.
func NewTimer(src timing.Source) *Timer {
	if src == nil {
		src = timing.System()
	}
	return &Timer{src: src, phases: make([]Phase, 0, 8)}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(group, name string) int {
	t.phases = append(t.phases, Phase{
		Group:   group,
		Name:    name,
		Start:   t.src.Now(),
		running: true,
	})
	return len(t.phases) - 1
}

// End finishes a phase by its index. Ending an unknown or already-finished
// phase is a no-op.
func (t *Timer) End(idx int) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	if !p.running {
		return
	}
	iv := t.src.Now().Sub(p.Start)
	p.Wall = iv.Wall
	p.Process = iv.Process
	p.running = false
}

// StopAll finishes every phase still running, innermost first.
func (t *Timer) StopAll() {
	for i := len(t.phases) - 1; i >= 0; i-- {
		t.End(i)
	}
}

// Reading is one serializable timer value, labelled "<Group>/<Name>" plus
// a ".wall" or ".process" component suffix.
type Reading struct {
	Label   string
	Seconds float64
}

// Readings returns the wall and process values of every finished phase, in
// Begin order. Running phases are excluded; stop them first.
func (t *Timer) Readings() []Reading {
	out := make([]Reading, 0, len(t.phases)*2)
	for _, p := range t.phases {
		if p.running {
			continue
		}
		label := p.Group + "/" + p.Name
		out = append(out,
			Reading{Label: label + ".wall", Seconds: p.Wall.Seconds()},
			Reading{Label: label + ".process", Seconds: p.Process.Seconds()},
		)
	}
	return out
}

// Summary returns a human-readable rendition of all finished phases.
func (t *Timer) Summary() string {
	out := "timers:\n"
	var total time.Duration
	for _, p := range t.phases {
		if p.running {
			continue
		}
		total += p.Wall
		out += fmt.Sprintf("  %-40s %9.2f ms wall %9.2f ms process\n",
			p.Group+"/"+p.Name, millis(p.Wall), millis(p.Process))
	}
	out += fmt.Sprintf("  %-40s %9.2f ms\n", "total", millis(total))
	return out
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
