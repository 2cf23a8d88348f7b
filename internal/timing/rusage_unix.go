//go:build unix

package timing

import (
	"time"

	"golang.org/x/sys/unix"
)

// systemSource reads wall time from the system clock and process time from
// getrusage(RUSAGE_SELF), user plus system CPU.
type systemSource struct{}

// System returns the Source backed by the operating system.
func System() Source { return systemSource{} }

func (systemSource) Now() Snapshot {
	return Snapshot{Wall: time.Now(), Process: processTime()}
}

func processTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return timevalDuration(ru.Utime) + timevalDuration(ru.Stime)
}

func timevalDuration(tv unix.Timeval) time.Duration {
	return time.Duration(tv.Sec)*time.Second + time.Duration(tv.Usec)*time.Microsecond
}

// ChildrenMaxRSS reports the peak resident set size among all waited-for
// child processes, in the kernel's native unit (kilobytes on Linux).
func ChildrenMaxRSS() int64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_CHILDREN, &ru); err != nil {
		return 0
	}
	return int64(ru.Maxrss)
}
