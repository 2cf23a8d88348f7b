package statsdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"unistat/internal/stats"
)

func TestParseFileName(t *testing.T) {
	a, err := ParseFileName("stats-1724981000000000-swiftc-MyMod-main.swift-arm64_apple_ios-o-O-12345.json")
	if err != nil {
		t.Fatalf("ParseFileName: %v", err)
	}
	if a.Kind != KindStats {
		t.Fatalf("kind = %v, want stats", a.Kind)
	}
	if a.EpochMicros != 1724981000000000 {
		t.Fatalf("epoch = %d", a.EpochMicros)
	}
	if a.Program != "swiftc" {
		t.Fatalf("program = %q", a.Program)
	}
	if a.AuxName != "MyMod-main.swift-arm64_apple_ios-o-O" {
		t.Fatalf("aux = %q", a.AuxName)
	}
	if a.Random != "12345" {
		t.Fatalf("random = %q", a.Random)
	}
}

func TestParseFileNameRejectsOthers(t *testing.T) {
	for _, name := range []string{
		"notes.txt",
		"stats-abc-prog-aux-1.json",
		"stats-1-prog.json",
		"trace-1-prog-a-b-c-d-e-2.json", // wrong extension for a trace
	} {
		if _, err := ParseFileName(name); err == nil {
			t.Fatalf("ParseFileName(%q) unexpectedly succeeded", name)
		}
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestScanAndMergeStats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stats-2000-p-m-i-t-o-O-1.json",
		"{\n\t\"Frontend.NumSourceLines\": 100,\n\t\"Driver.NumDriverJobsRun\": 1,\n\t\"Running Program/p.wall\": 1.000000\n}\n")
	writeFile(t, dir, "stats-1000-p-m-i-t-o-O-2.json",
		"{\n\t\"Frontend.NumSourceLines\": 50,\n\t\"Running Program/p.wall\": 3.000000\n}\n")
	writeFile(t, dir, "README.md", "not an artifact")

	arts, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("scanned %d artifacts, want 2", len(arts))
	}
	if arts[0].EpochMicros != 1000 {
		t.Fatalf("artifacts not sorted by timestamp: %+v", arts)
	}

	merged, err := MergeStats(arts)
	if err != nil {
		t.Fatalf("MergeStats: %v", err)
	}
	if merged.Runs != 2 {
		t.Fatalf("runs = %d, want 2", merged.Runs)
	}
	if got := merged.Counters["Frontend.NumSourceLines"]; got != 150 {
		t.Fatalf("merged NumSourceLines = %d, want 150", got)
	}
	if got := merged.Counters["Driver.NumDriverJobsRun"]; got != 1 {
		t.Fatalf("merged NumDriverJobsRun = %d, want 1", got)
	}
	if got := merged.Timers["Running Program/p.wall"]; got != 2.0 {
		t.Fatalf("mean wall = %v, want 2.0", got)
	}
}

func TestReadTraceAndSummarize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "trace-1000-p-m-i-t-o-O-1.csv",
		"Time,Live,IsEntry,EventName,CounterName,CounterDelta,CounterValue,EntityName,EntityRange\n"+
			"1000,0,\"entry\",\"parse\",\"Frontend.NumDeclsParsed\",4,4,\"main\",\"f:1:1\"\n"+
			"2500,1500,\"exit\",\"parse\",\"Frontend.NumDeclsParsed\",6,10,\"main\",\"f:1:1\"\n"+
			"2600,100,\"exit\",\"typecheck\",\"Frontend.NumDeclsTypechecked\",10,10,\"\",\"\"\n")

	rows, err := ReadTrace(path)
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !rows[0].IsEntry || rows[0].EventName != "parse" || rows[0].Delta != 4 {
		t.Fatalf("bad first row %+v", rows[0])
	}
	if rows[1].LiveMicros != 1500 || rows[1].Value != 10 {
		t.Fatalf("bad second row %+v", rows[1])
	}

	sums := SummarizeTrace(rows)
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}
	parse := sums[0]
	if parse.EventName != "parse" || parse.Rows != 2 || parse.Entries != 1 || parse.Exits != 1 {
		t.Fatalf("bad parse summary %+v", parse)
	}
	if got := parse.NetDelta["Frontend.NumDeclsParsed"]; got != 10 {
		t.Fatalf("parse net delta = %d, want 10", got)
	}
	if sums[1].EventName != "typecheck" {
		t.Fatalf("summaries out of order: %+v", sums)
	}
}

func TestReadsReporterArtifacts(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()
	r := stats.New(stats.Config{
		ProgramName: "unistat",
		ModuleName:  "integration",
		Directory:   dir,
		TraceEvents: true,
		Log:         &logger,
	})
	tr := r.TraceScope("parse", stats.Entity{})
	r.Frontend().NumSourceLines += 10
	tr.Done()
	r.NoteExitStatus(0)
	r.Flush()

	arts, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("scanned %d artifacts, want stats plus trace", len(arts))
	}

	merged, err := MergeStats(arts)
	if err != nil {
		t.Fatalf("MergeStats: %v", err)
	}
	if got := merged.Counters["Frontend.NumSourceLines"]; got != 10 {
		t.Fatalf("merged NumSourceLines = %d, want 10", got)
	}

	for _, a := range arts {
		if a.Kind != KindTrace {
			continue
		}
		rows, err := ReadTrace(a.Path)
		if err != nil {
			t.Fatalf("ReadTrace: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("trace has %d rows, want 1", len(rows))
		}
		if rows[0].IsEntry || rows[0].Delta != 10 {
			t.Fatalf("bad row %+v", rows[0])
		}
	}
}
