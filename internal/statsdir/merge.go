package statsdir

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Merged is the sum of counter snapshots across one or more runs. Timer
// readings are averaged rather than summed since they describe elapsed
// time, not work.
type Merged struct {
	Runs     int
	Counters map[string]int64
	Timers   map[string]float64
}

// MergeStats loads and sums the given stats artifacts. Non-stats artifacts
// in the input are ignored.
func MergeStats(arts []Artifact) (Merged, error) {
	m := Merged{
		Counters: make(map[string]int64),
		Timers:   make(map[string]float64),
	}
	for _, a := range arts {
		if a.Kind != KindStats {
			continue
		}
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return Merged{}, fmt.Errorf("cannot read stats artifact: %w", err)
		}
		parsed := gjson.ParseBytes(data)
		if !parsed.IsObject() {
			return Merged{}, fmt.Errorf("stats artifact %s is not a JSON object", a.Path)
		}
		parsed.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if strings.HasPrefix(name, "Frontend.") || strings.HasPrefix(name, "Driver.") {
				m.Counters[name] += value.Int()
			} else {
				m.Timers[name] += value.Float()
			}
			return true
		})
		m.Runs++
	}
	if m.Runs > 1 {
		for name := range m.Timers {
			m.Timers[name] /= float64(m.Runs)
		}
	}
	return m, nil
}

// CounterNames returns the merged counter names in sorted order.
func (m Merged) CounterNames() []string {
	names := make([]string, 0, len(m.Counters))
	for name := range m.Counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TimerNames returns the merged timer labels in sorted order.
func (m Merged) TimerNames() []string {
	names := make([]string, 0, len(m.Timers))
	for name := range m.Timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
