package site

import (
	"fmt"

	"github.com/cayleygraph/owldoc/internal/metrics"
)

// Diagnostics collects the recoverable problems of a run, one readable
// line each. Lines are never removed.
type Diagnostics struct {
	lines []string
}

// Addf records one problem.
func (d *Diagnostics) Addf(format string, args ...interface{}) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
	metrics.Diagnostic()
}

// Len returns the number of recorded problems.
func (d *Diagnostics) Len() int { return len(d.lines) }

// Lines returns a copy of the recorded problems in the order they were
// found.
func (d *Diagnostics) Lines() []string {
	return append([]string(nil), d.lines...)
}

// fileSink prefixes ontology diagnostics with the file they come from.
type fileSink struct {
	d    *Diagnostics
	file string
}

func (s fileSink) Addf(format string, args ...interface{}) {
	s.d.Addf("%s: %s", s.file, fmt.Sprintf(format, args...))
}
