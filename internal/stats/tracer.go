package stats

import "unistat/internal/timing"

// Tracer marks one traced lexical region. Obtain one from
// (*Reporter).TraceScope and release it with Done on every exit path:
//
//	tr := reporter.TraceScope("parse", stats.Entity{})
//	defer tr.Done()
//
// All methods are safe on a nil or inert Tracer, so call sites never need
// to check whether tracing is enabled. Tracers must be released in strict
// last-in-first-out order on the goroutine that created them; the shared
// baseline is only meaningful under lexically nested scopes.
type Tracer struct {
	reporter  *Reporter
	savedTime timing.Snapshot
	eventName string
	entity    Entity
}

// TraceScope opens a traced region named eventName, labelled with entity.
// When the reporter is nil or was built without event tracing the returned
// tracer is inert: it captures no time and records nothing. Otherwise the
// reporter immediately flushes counter deltas as entry events.
func (r *Reporter) TraceScope(eventName string, entity Entity) *Tracer {
	if r == nil || r.baseline == nil {
		return &Tracer{}
	}
	t := &Tracer{
		reporter:  r,
		savedTime: r.source.Now(),
		eventName: eventName,
		entity:    entity,
	}
	r.saveEvents(t, true)
	return t
}

// Done releases the region and flushes counter deltas as exit events.
// After Done the tracer is inert; a second Done is a no-op.
func (t *Tracer) Done() {
	if t == nil || t.reporter == nil {
		return
	}
	r := t.reporter
	t.reporter = nil
	r.saveEvents(t, false)
}
