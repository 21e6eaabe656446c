package explore

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders the CSV columns as a console table for a quick visual
// comparison after the narrative. Rows keep exploration order; no ranking.
func (s *Summary) WriteTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Implementation", "Directory", "True Latency", "Total Cost"})
	for _, vr := range s.Results {
		t.AppendRow(table.Row{
			vr.Variant.Name,
			vr.Variant.Dir,
			vr.Result.TrueLatency,
			fmt.Sprintf("%.3f", vr.Result.Cost.Total),
		})
	}
	t.Render()
}
