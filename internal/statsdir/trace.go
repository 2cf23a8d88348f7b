package statsdir

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// TraceRow is one decoded row of a trace artifact.
type TraceRow struct {
	TimeMicros  uint64
	LiveMicros  uint64
	IsEntry     bool
	EventName   string
	CounterName string
	Delta       int64
	Value       int64
	EntityName  string
	EntityRange string
}

// traceColumns is the expected header width of a trace artifact.
const traceColumns = 9

// ReadTrace decodes the rows of one trace artifact.
func ReadTrace(path string) ([]TraceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace artifact: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = traceColumns
	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot decode trace artifact %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("trace artifact %s has no header", path)
	}

	rows := make([]TraceRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("trace artifact %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(rec []string) (TraceRow, error) {
	t, err := strconv.ParseUint(rec[0], 10, 64)
	if err != nil {
		return TraceRow{}, fmt.Errorf("bad Time field %q: %w", rec[0], err)
	}
	live, err := strconv.ParseUint(rec[1], 10, 64)
	if err != nil {
		return TraceRow{}, fmt.Errorf("bad Live field %q: %w", rec[1], err)
	}
	delta, err := strconv.ParseInt(rec[5], 10, 64)
	if err != nil {
		return TraceRow{}, fmt.Errorf("bad CounterDelta field %q: %w", rec[5], err)
	}
	value, err := strconv.ParseInt(rec[6], 10, 64)
	if err != nil {
		return TraceRow{}, fmt.Errorf("bad CounterValue field %q: %w", rec[6], err)
	}
	return TraceRow{
		TimeMicros:  t,
		LiveMicros:  live,
		IsEntry:     rec[2] == "entry",
		EventName:   rec[3],
		CounterName: rec[4],
		Delta:       delta,
		Value:       value,
		EntityName:  rec[7],
		EntityRange: rec[8],
	}, nil
}

// EventSummary aggregates the trace rows sharing one event name.
type EventSummary struct {
	EventName string
	Rows      int
	Entries   int
	Exits     int
	NetDelta  map[string]int64 // per counter name
}

// SummarizeTrace groups rows by event name, ordered by first appearance.
func SummarizeTrace(rows []TraceRow) []EventSummary {
	index := make(map[string]int)
	var out []EventSummary
	for _, row := range rows {
		i, ok := index[row.EventName]
		if !ok {
			i = len(out)
			index[row.EventName] = i
			out = append(out, EventSummary{
				EventName: row.EventName,
				NetDelta:  make(map[string]int64),
			})
		}
		s := &out[i]
		s.Rows++
		if row.IsEntry {
			s.Entries++
		} else {
			s.Exits++
		}
		s.NetDelta[row.CounterName] += row.Delta
	}
	return out
}

// Counters returns the counter names of a summary in sorted order.
func (s EventSummary) Counters() []string {
	names := make([]string, 0, len(s.NetDelta))
	for name := range s.NetDelta {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
