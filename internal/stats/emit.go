package stats

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"unistat/internal/observ"
)

// writeSnapshot serializes every allocated counter domain plus the timer
// readings as a single JSON object with a trailing newline.
func writeSnapshot(w io.Writer, reg *Registry, timer *observ.Timer) error {
	var b bytes.Buffer
	b.WriteString("{\n")
	delim := ""
	if reg.HasFrontend() {
		c := reg.Frontend()
		for _, d := range frontendCounterTable {
			fmt.Fprintf(&b, "%s\t\"Frontend.%s\": %d", delim, d.name, *d.field(c))
			delim = ",\n"
		}
	}
	if reg.HasDriver() {
		c := reg.Driver()
		for _, d := range driverCounterTable {
			fmt.Fprintf(&b, "%s\t\"Driver.%s\": %d", delim, d.name, *d.field(c))
			delim = ",\n"
		}
	}
	for _, rd := range timer.Readings() {
		fmt.Fprintf(&b, "%s\t%q: %.6f", delim, rd.Label, rd.Seconds)
		delim = ",\n"
	}
	b.WriteString("\n}\n")
	_, err := w.Write(b.Bytes())
	return err
}

// traceHeader is the fixed first row of the trace file.
const traceHeader = "Time,Live,IsEntry,EventName,CounterName,CounterDelta,CounterValue,EntityName,EntityRange\n"

// writeTrace serializes the event log as CSV, one row per event. String
// fields are always double-quoted; entity name and range come from the
// injected resolver.
func writeTrace(w io.Writer, events []TraceEvent, resolver Resolver) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(traceHeader); err != nil {
		return err
	}
	for _, ev := range events {
		entry := "exit"
		if ev.IsEntry {
			entry = "entry"
		}
		_, err := fmt.Fprintf(bw, "%d,%d,\"%s\",\"%s\",\"%s\",%d,%d,\"%s\",\"%s\"\n",
			ev.TimeMicros, ev.LiveMicros, entry,
			ev.EventName, ev.CounterName,
			ev.Delta, ev.Value,
			resolver.EntityName(ev.Entity), resolver.EntityRange(ev.Entity))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
