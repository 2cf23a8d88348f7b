// Package statsdir reads directories of artifacts written by the stats
// reporter: stats-*.json counter snapshots and trace-*.csv event traces.
package statsdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Kind distinguishes the two artifact flavors.
type Kind uint8

const (
	KindStats Kind = iota + 1
	KindTrace
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindStats:
		return "stats"
	case KindTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// Artifact identifies one reporter output file, decoded from its name:
// <kind>-<epochMicros>-<program>-<auxName>-<random>.<ext>.
type Artifact struct {
	Path        string
	Kind        Kind
	EpochMicros int64
	Program     string
	AuxName     string
	Random      string
}

// ParseFileName decodes a reporter artifact name. The aux name itself
// contains '-' separators, so the fixed components are taken from the two
// ends.
func ParseFileName(path string) (Artifact, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	var kind Kind
	switch {
	case strings.HasPrefix(base, "stats-") && ext == ".json":
		kind = KindStats
	case strings.HasPrefix(base, "trace-") && ext == ".csv":
		kind = KindTrace
	default:
		return Artifact{}, fmt.Errorf("not a reporter artifact name: %q", base)
	}

	parts := strings.Split(strings.TrimSuffix(base, ext), "-")
	if len(parts) < 5 {
		return Artifact{}, fmt.Errorf("malformed artifact name: %q", base)
	}
	epoch, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Artifact{}, fmt.Errorf("malformed timestamp in %q: %w", base, err)
	}
	return Artifact{
		Path:        path,
		Kind:        kind,
		EpochMicros: epoch,
		Program:     parts[2],
		AuxName:     strings.Join(parts[3:len(parts)-1], "-"),
		Random:      parts[len(parts)-1],
	}, nil
}

// Scan lists the reporter artifacts in dir, oldest first. Files that do
// not look like reporter output are skipped.
func Scan(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot scan stats directory: %w", err)
	}
	var arts []Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		a, err := ParseFileName(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		arts = append(arts, a)
	}
	sort.Slice(arts, func(i, j int) bool { return arts[i].EpochMicros < arts[j].EpochMicros })
	return arts, nil
}
