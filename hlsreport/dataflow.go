package hlsreport

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadDataflow parses the csynth text report of the top-level dataflow
// region. It returns one StageLatency per pipeline stage, in the order the
// report lists them, and the region's steady-state initiation interval.
//
// The report is the usual Vitis ASCII-table layout: a "* Summary:" table
// whose dataflow row carries the region interval, and a "* Instance:" table
// with one row per stage:
//
//	|     Instance     | min lat | max lat | ... | min II | max II | Type |
func ReadDataflow(path string) ([]StageLatency, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading dataflow report: %w", err)
	}
	defer f.Close()

	var (
		stages  []StageLatency
		ii      int
		iiFound bool
		section string
	)

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "* Summary:"):
			section = "summary"
			continue
		case strings.HasPrefix(line, "* Instance:"):
			section = "instance"
			continue
		case strings.HasPrefix(line, "* "), strings.HasPrefix(line, "=="):
			section = ""
			continue
		}

		cells := splitTableRow(line)
		if cells == nil {
			continue
		}

		switch section {
		case "summary":
			// The dataflow row: | lat min | lat max | abs min | abs max |
			// interval min | interval max | dataflow |
			if len(cells) >= 7 && cells[len(cells)-1] == "dataflow" {
				if v, err := strconv.Atoi(cells[5]); err == nil {
					ii = v
					iiFound = true
				}
			}
		case "instance":
			if len(cells) >= 8 {
				lat, err := strconv.Atoi(cells[2])
				if err != nil || cells[0] == "" {
					continue // column header row
				}
				stages = append(stages, StageLatency{
					Name:   strings.TrimSuffix(cells[0], "_U0"),
					Cycles: lat,
				})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading dataflow report: %w", err)
	}

	if !iiFound {
		return nil, 0, &ParseError{Path: path, Reason: "missing dataflow initiation interval"}
	}
	if len(stages) == 0 {
		return nil, 0, &ParseError{Path: path, Reason: "no pipeline stage rows in instance table"}
	}
	return stages, ii, nil
}

// splitTableRow breaks a |-delimited table row into trimmed cells, or returns
// nil for rulers and prose lines.
func splitTableRow(line string) []string {
	if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
		return nil
	}
	parts := strings.Split(line, "|")
	cells := parts[1 : len(parts)-1]
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
