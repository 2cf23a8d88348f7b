package stats

// TraceEvent is one recorded counter transition. Events are produced only
// when a frontend counter moved off the shared baseline at a flush point,
// so the log records transitions rather than every scope boundary.
type TraceEvent struct {
	TimeMicros  uint64 // process time at the flush, µs
	LiveMicros  uint64 // scope live time at the flush, µs; 0 on entry
	IsEntry     bool
	EventName   string
	CounterName string
	Delta       int64
	Value       int64
	Entity      Entity
}

// EventLog is the append-only ordered sequence of trace events for one
// run. It grows without bound until teardown consumes it.
type EventLog struct {
	events []TraceEvent
}

// Append adds an event at the end of the log.
func (l *EventLog) Append(ev TraceEvent) {
	l.events = append(l.events, ev)
}

// Events returns the recorded events in append order. The slice is owned
// by the log; callers must not mutate it.
func (l *EventLog) Events() []TraceEvent { return l.events }

// Len returns the number of recorded events.
func (l *EventLog) Len() int { return len(l.events) }
