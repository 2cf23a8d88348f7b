package stats

import (
	"strings"
	"testing"
	"time"

	"unistat/internal/observ"
)

func TestWriteSnapshotLayout(t *testing.T) {
	src := newFakeSource()
	var reg Registry
	reg.Frontend().NumSourceLines = 42
	reg.Driver().NumDriverJobsRun = 2

	timer := observ.NewTimer(src)
	idx := timer.Begin("Running Program", "testprog")
	src.advance(1500 * time.Millisecond)
	timer.End(idx)

	var sb strings.Builder
	if err := writeSnapshot(&sb, &reg, timer); err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "{\n") || !strings.HasSuffix(out, "\n}\n") {
		t.Fatalf("snapshot not a braced object:\n%s", out)
	}
	for _, want := range []string{
		"\t\"Frontend.NumSourceLines\": 42",
		"\t\"Frontend.NumProcessFailures\": 0",
		"\t\"Driver.NumDriverJobsRun\": 2",
		"\t\"Running Program/testprog.wall\": 1.500000",
		"\t\"Running Program/testprog.process\": 1.500000",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("snapshot missing %q:\n%s", want, out)
		}
	}

	// Comma-newline delimited, no trailing comma before the brace.
	entries := len(frontendCounterTable) + len(driverCounterTable) + 2
	if got := strings.Count(out, ",\n"); got != entries-1 {
		t.Fatalf("snapshot has %d delimiters, want %d:\n%s", got, entries-1, out)
	}
	if strings.Contains(out, ",\n}") {
		t.Fatalf("snapshot has a trailing comma:\n%s", out)
	}
}

type namingResolver struct{}

func (namingResolver) EntityName(e Entity) string {
	if s, ok := e.Ref.(string); ok {
		return s
	}
	return ""
}

func (namingResolver) EntityRange(Entity) string { return "main.src:3:1-main.src:9:2" }

func TestWriteTraceRows(t *testing.T) {
	events := []TraceEvent{
		{
			TimeMicros:  1000,
			LiveMicros:  0,
			IsEntry:     true,
			EventName:   "parse",
			CounterName: "Frontend.NumDeclsParsed",
			Delta:       4,
			Value:       4,
			Entity:      Entity{Kind: EntityDecl, Ref: "mainDecl"},
		},
		{
			TimeMicros:  2500,
			LiveMicros:  1500,
			IsEntry:     false,
			EventName:   "parse",
			CounterName: "Frontend.NumDeclsParsed",
			Delta:       6,
			Value:       10,
			Entity:      Entity{Kind: EntityDecl, Ref: "mainDecl"},
		},
	}

	var sb strings.Builder
	if err := writeTrace(&sb, events, namingResolver{}); err != nil {
		t.Fatalf("writeTrace: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("trace has %d lines, want 3", len(lines))
	}
	if lines[0] != "Time,Live,IsEntry,EventName,CounterName,CounterDelta,CounterValue,EntityName,EntityRange" {
		t.Fatalf("bad header %q", lines[0])
	}
	wantEntry := `1000,0,"entry","parse","Frontend.NumDeclsParsed",4,4,"mainDecl","main.src:3:1-main.src:9:2"`
	if lines[1] != wantEntry {
		t.Fatalf("entry row = %q, want %q", lines[1], wantEntry)
	}
	wantExit := `2500,1500,"exit","parse","Frontend.NumDeclsParsed",6,10,"mainDecl","main.src:3:1-main.src:9:2"`
	if lines[2] != wantExit {
		t.Fatalf("exit row = %q, want %q", lines[2], wantExit)
	}
}
