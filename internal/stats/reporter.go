package stats

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"unistat/internal/observ"
	"unistat/internal/timing"
)

// UsageProbe supplies resource readings taken at teardown.
type UsageProbe interface {
	// ChildrenMaxRSS reports the peak resident set size among waited-for
	// child processes, in the platform's native unit.
	ChildrenMaxRSS() int64
}

type systemProbe struct{}

func (systemProbe) ChildrenMaxRSS() int64 { return timing.ChildrenMaxRSS() }

// Config describes one Reporter. ProgramName and Directory are required in
// practice; everything else has a usable zero value.
type Config struct {
	ProgramName string
	ModuleName  string
	InputName   string // defaults to "all" in the aux name when empty
	TripleName  string
	OutputType  string // leading '.' stripped
	OptType     string // leading '-' stripped; defaults to "Onone"
	Directory   string // where the stats and trace files land

	// TraceEvents enables the scoped event tracer. Without it every
	// TraceScope call returns an inert tracer and no trace file is
	// written.
	TraceEvents bool

	Source   timing.Source   // nil: the system clock
	Probe    UsageProbe      // nil: getrusage-backed probe
	Resolver Resolver        // nil: entities render as ""
	Log      *zerolog.Logger // nil: the process-wide logger
}

// Reporter accumulates counters and trace events for one run and writes
// both artifacts exactly once at teardown. Create one per run, mutate it
// from a single goroutine, and call Flush exactly once when the run ends.
type Reporter struct {
	programName string
	auxName     string
	statsPath   string
	tracePath   string

	source   timing.Source
	probe    UsageProbe
	resolver Resolver
	log      zerolog.Logger

	registry Registry
	baseline *FrontendCounters // non-nil iff event tracing is enabled
	events   EventLog

	timer        *observ.Timer
	programPhase int
	targetPhase  int

	startedTime timing.Snapshot

	exitStatusSet bool
	exitStatus    int
	flushed       bool
}

// New creates a Reporter and starts its run-scoped timers. When
// cfg.TraceEvents is set, a zero-valued baseline is installed so the very
// first counter movement already produces a trace event.
func New(cfg Config) *Reporter {
	src := cfg.Source
	if src == nil {
		src = timing.System()
	}
	probe := cfg.Probe
	if probe == nil {
		probe = systemProbe{}
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = nopResolver{}
	}
	logger := log.Logger
	if cfg.Log != nil {
		logger = *cfg.Log
	}

	aux := AuxName(cfg.ModuleName, cfg.InputName, cfg.TripleName, cfg.OutputType, cfg.OptType)
	r := &Reporter{
		programName: cfg.ProgramName,
		auxName:     aux,
		statsPath:   filepath.Join(cfg.Directory, makeStatsFileName(cfg.ProgramName, aux)),
		tracePath:   filepath.Join(cfg.Directory, makeTraceFileName(cfg.ProgramName, aux)),
		source:      src,
		probe:       probe,
		resolver:    resolver,
		log:         logger,
		startedTime: src.Now(),
	}
	r.timer = observ.NewTimer(src)
	r.programPhase = r.timer.Begin("Running Program", cfg.ProgramName)
	r.targetPhase = r.timer.Begin("Building Target", aux)
	if cfg.TraceEvents {
		r.baseline = &FrontendCounters{}
	}
	return r
}

// Frontend returns the frontend counter domain, allocating it on first
// use.
func (r *Reporter) Frontend() *FrontendCounters { return r.registry.Frontend() }

// Driver returns the driver counter domain, allocating it on first use.
func (r *Reporter) Driver() *DriverCounters { return r.registry.Driver() }

// TracingEnabled reports whether scoped event tracing is active.
func (r *Reporter) TracingEnabled() bool { return r != nil && r.baseline != nil }

// Events returns the trace events recorded so far.
func (r *Reporter) Events() []TraceEvent { return r.events.Events() }

// StatsPath returns where the snapshot will be written.
func (r *Reporter) StatsPath() string { return r.statsPath }

// TracePath returns where the event trace will be written.
func (r *Reporter) TracePath() string { return r.tracePath }

// NoteExitStatus records the process exit code, at most once per run. A
// second call is a programming error and panics. A run that never notes a
// status counts as failed at teardown.
func (r *Reporter) NoteExitStatus(code int) {
	if r.exitStatusSet {
		panic("stats: exit status noted twice")
	}
	r.exitStatusSet = true
	r.exitStatus = code
}

// saveEvents flushes the frontend counter deltas accumulated since the
// last flush into the event log. Counters sitting exactly on the baseline
// produce no event, which also suppresses the entry row of a scope that
// opens before any counter has moved.
func (r *Reporter) saveEvents(t *Tracer, isEntry bool) {
	if r.baseline == nil {
		return
	}
	nowUS := r.source.Now().ProcessMicros()
	var liveUS uint64
	if !isEntry {
		if startUS := t.savedTime.ProcessMicros(); nowUS > startUS {
			liveUS = nowUS - startUS
		}
	}
	c := r.registry.Frontend()
	for _, d := range frontendCounterTable {
		total := *d.field(c)
		base := d.field(r.baseline)
		delta := total - *base
		if delta == 0 {
			continue
		}
		*base = total
		r.events.Append(TraceEvent{
			TimeMicros:  nowUS,
			LiveMicros:  liveUS,
			IsEntry:     isEntry,
			EventName:   t.eventName,
			CounterName: "Frontend." + d.name,
			Delta:       delta,
			Value:       total,
			Entity:      t.entity,
		})
	}
}

// Flush runs the teardown sequence. It must be called exactly once; a
// second call is a programming error and panics. Output failures are
// reported and skipped, never fatal: every remaining phase still runs.
func (r *Reporter) Flush() {
	if r.flushed {
		panic("stats: reporter flushed twice")
	}
	r.flushed = true

	// A run that never reported success counts as a failure. The counter
	// goes to whichever domain the run actually used, driver as the
	// fallback.
	if !r.exitStatusSet || r.exitStatus != 0 {
		if r.registry.HasFrontend() {
			r.registry.Frontend().NumProcessFailures++
		} else {
			r.registry.Driver().NumProcessFailures++
		}
	}

	// Timers must be stopped before their readings are serialized; the
	// target timer closes before the program timer enclosing it.
	r.timer.End(r.targetPhase)
	r.timer.End(r.programPhase)
	r.timer.StopAll()

	elapsed := r.source.Now().Sub(r.startedTime)
	if r.registry.HasFrontend() {
		c := r.registry.Frontend()
		// Crude top-level throughput figure.
		if c.NumSourceLines != 0 && elapsed.Process > 0 {
			c.NumSourceLinesPerSecond = int64(float64(c.NumSourceLines) / elapsed.Process.Seconds())
		}
	}

	if r.registry.HasDriver() {
		r.registry.Driver().ChildrenMaxRSS = r.probe.ChildrenMaxRSS()
	}

	if f, err := openAppend(r.statsPath); err != nil {
		r.log.Error().Err(err).Str("path", r.statsPath).Msg("cannot open stats output file")
	} else {
		if err := writeSnapshot(f, &r.registry, r.timer); err != nil {
			r.log.Error().Err(err).Str("path", r.statsPath).Msg("cannot write stats output file")
		}
		if err := f.Close(); err != nil {
			r.log.Error().Err(err).Str("path", r.statsPath).Msg("cannot close stats output file")
		}
	}

	if r.baseline == nil {
		return
	}
	if f, err := openAppend(r.tracePath); err != nil {
		r.log.Error().Err(err).Str("path", r.tracePath).Msg("cannot open trace output file")
	} else {
		if err := writeTrace(f, r.events.Events(), r.resolver); err != nil {
			r.log.Error().Err(err).Str("path", r.tracePath).Msg("cannot write trace output file")
		}
		if err := f.Close(); err != nil {
			r.log.Error().Err(err).Str("path", r.tracePath).Msg("cannot close trace output file")
		}
	}
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
