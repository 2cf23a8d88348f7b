// Package prof wraps the runtime profilers behind a single session with a
// one-shot Stop, for wiring into CLI flags.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options selects which profiles a Session collects. Empty paths disable
// the corresponding profiler.
type Options struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Session owns the files of the active profilers.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	memPath   string
	stopped   bool
}

// Start enables the requested profilers. On error every profiler already
// started is stopped again.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.MemPath}

	if opts.CPUPath != "" {
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("cannot create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cannot start cpu profile: %w", err)
		}
		s.cpuFile = f
	}

	if opts.TracePath != "" {
		f, err := os.Create(opts.TracePath)
		if err != nil {
			s.Stop()
			return nil, fmt.Errorf("cannot create runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.Stop()
			return nil, fmt.Errorf("cannot start runtime trace: %w", err)
		}
		s.traceFile = f
	}

	return s, nil
}

// Stop ends the active profilers and writes the heap profile if one was
// requested. Safe to call more than once.
func (s *Session) Stop() {
	if s == nil || s.stopped {
		return
	}
	s.stopped = true

	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
	if s.memPath != "" {
		if err := writeHeapProfile(s.memPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
		}
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
