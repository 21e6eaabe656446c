// Package hlsreport parses the report artifacts Vitis HLS generates when it
// synthesizes a layer implementation. Two artifacts matter: the top-level
// csynth XML report, which carries the worst-case latency and the resource
// cost of the whole function, and the dataflow-region text report, which
// carries the per-stage latencies and the region's initiation interval.
package hlsreport

import (
	"fmt"
	"sort"
)

// CostBreakdown maps each resource category in the report to its fractional
// utilization of the device. Total is the binding resource fraction, a
// separate scalar supplied by the reader, never a sum over the categories.
type CostBreakdown struct {
	Categories map[string]float64
	Total      float64
}

// CategoryNames returns the resource category names in sorted order.
func (c CostBreakdown) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for n := range c.Categories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// StageLatency is the cycle count of one pipeline stage inside the top-level
// dataflow region. Slices of StageLatency are kept in pipeline order.
type StageLatency struct {
	Name   string
	Cycles int
}

// ParseError reports a report file that is present but cannot be interpreted
// against the expected schema. A malformed report means the synthesis run is
// unusable, so callers treat it as fatal.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed synthesis report %s: %s", e.Path, e.Reason)
}
