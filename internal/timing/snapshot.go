package timing

import (
	"time"

	"fortio.org/safecast"
)

// Snapshot is an immutable pair of wall-clock and process-CPU readings
// taken at a single instant.
type Snapshot struct {
	Wall    time.Time
	Process time.Duration
}

// Interval is the time elapsed between two Snapshots.
type Interval struct {
	Wall    time.Duration
	Process time.Duration
}

// Sub returns the interval elapsed from earlier to s.
func (s Snapshot) Sub(earlier Snapshot) Interval {
	return Interval{
		Wall:    s.Wall.Sub(earlier.Wall),
		Process: s.Process - earlier.Process,
	}
}

// ProcessMicros returns the process-CPU component of the snapshot in
// microseconds. Negative or overflowing readings clamp to zero.
func (s Snapshot) ProcessMicros() uint64 {
	return DurationMicros(s.Process)
}

// DurationMicros converts a duration to whole microseconds, clamping
// negative and overflowing values to zero.
func DurationMicros(d time.Duration) uint64 {
	us, err := safecast.Conv[uint64](d.Microseconds())
	if err != nil {
		return 0
	}
	return us
}

// Source produces Snapshots. One Source backs all time readings of a
// reporter so that fake clocks can drive it in tests.
type Source interface {
	Now() Snapshot
}
