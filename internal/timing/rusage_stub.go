//go:build !unix

package timing

import "time"

var processStart = time.Now()

// systemSource approximates process time with wall time since process start
// on platforms without getrusage.
type systemSource struct{}

// System returns the Source backed by the operating system.
func System() Source { return systemSource{} }

func (systemSource) Now() Snapshot {
	now := time.Now()
	return Snapshot{Wall: now, Process: now.Sub(processStart)}
}

// ChildrenMaxRSS reports 0 on platforms without getrusage.
func ChildrenMaxRSS() int64 { return 0 }
