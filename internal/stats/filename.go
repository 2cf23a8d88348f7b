package stats

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// cleanName maps every character outside [A-Za-z0-9.] to '_'. Output file
// names and the counters derived from them get split on '-' downstream, so
// hyphens and slashes must not survive into any name component.
func cleanName(n string) string {
	var b strings.Builder
	b.Grow(len(n))
	for i := 0; i < len(n); i++ {
		c := n[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '.':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// AuxName builds the composite target name embedded in output file names:
// sanitized module, input basename, target triple, output type and
// optimization level joined with '-'. An empty input means "all"; an empty
// optimization level means "Onone"; leading '.' and '-' are stripped from
// the output type and optimization level respectively.
func AuxName(moduleName, inputName, tripleName, outputType, optType string) string {
	if inputName == "" {
		inputName = "all"
	}
	// The path prefix would make the composite name too long.
	inputName = filepath.Base(inputName)
	if optType == "" {
		optType = "Onone"
	}
	outputType = strings.TrimPrefix(outputType, ".")
	optType = strings.TrimPrefix(optType, "-")
	return cleanName(moduleName) +
		"-" + cleanName(inputName) +
		"-" + cleanName(tripleName) +
		"-" + cleanName(outputType) +
		"-" + cleanName(optType)
}

func makeFileName(prefix, programName, auxName, suffix string) string {
	return fmt.Sprintf("%s-%d-%s-%s-%d.%s",
		prefix, time.Now().UnixMicro(), programName, auxName, randomToken(), suffix)
}

// randomToken keeps concurrent invocations writing into the same directory
// from colliding on a file name.
func randomToken() uint32 {
	return uuid.New().ID()
}

func makeStatsFileName(programName, auxName string) string {
	return makeFileName("stats", programName, auxName, "json")
}

func makeTraceFileName(programName, auxName string) string {
	return makeFileName("trace", programName, auxName, "csv")
}
