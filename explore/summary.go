package explore

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/scale-cnn/explorer/layer"
)

// VariantResult pairs an implementation with its analysis result. The
// pairing is positional: slices handed to Summary keep exploration order,
// and no identifier ties a Result back to its Variant.
type VariantResult struct {
	Variant layer.Variant
	Result  Result
}

// Summary tabulates the results of one layer's exploration batch. It does
// not rank or aggregate: rows keep exploration order and comparison is left
// to the reader or to downstream tooling over the CSV.
type Summary struct {
	Layer   layer.Spec
	Results []VariantResult
}

const narrativeBanner = `
===========================================================
== Synthesis results for %s layer implementations
===========================================================`

// WriteCSV writes the machine-readable table: one row per implementation
// with its directory, extrapolated latency and aggregate cost.
func (s *Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ImplementationDir", "Latency", "Cost"}); err != nil {
		return err
	}
	for _, vr := range s.Results {
		row := []string{
			vr.Variant.Dir,
			strconv.Itoa(vr.Result.TrueLatency),
			strconv.FormatFloat(vr.Result.Cost.Total, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteNarrative writes the operator-facing report: per implementation, its
// identity, raw and extrapolated latency, cost percentages per resource
// category, and the latency of every dataflow pipeline stage.
func (s *Summary) WriteNarrative(w io.Writer) {
	en := message.NewPrinter(language.English)

	fmt.Fprintf(w, narrativeBanner, s.Layer.LayerName)
	for _, vr := range s.Results {
		fmt.Fprint(w, "\n\n")
		fmt.Fprintf(w, "Implementation: %s\n", vr.Variant.Name)
		fmt.Fprintf(w, "Directory: %s\n", vr.Variant.Dir)

		en.Fprintf(w, "\nTotal latency (raw)  : %d cycles\n", vr.Result.RawLatency)
		en.Fprintf(w, "Total latency (true) : %d cycles\n\n", vr.Result.TrueLatency)

		fmt.Fprintln(w, "Cost info:")
		for _, category := range vr.Result.Cost.CategoryNames() {
			fmt.Fprintf(w, "%s: %.2f%%\n", category, vr.Result.Cost.Categories[category]*100)
		}
		fmt.Fprintf(w, "Total cost: %.3f\n\n", vr.Result.Cost.Total)

		fmt.Fprintln(w, "Subfunction latencies:")
		for _, stage := range vr.Result.Stages {
			fmt.Fprintf(w, "%s: %d cycles\n", stage.Name, stage.Cycles)
		}
	}
	fmt.Fprintln(w)
}

// Save renders both artifacts in memory first and only then touches the
// filesystem, so a batch that failed earlier never leaves partial output.
// It returns the paths of the written CSV and narrative files.
func (s *Summary) Save(dir, name string) (csvPath, txtPath string, err error) {
	var csvBuf, txtBuf bytes.Buffer
	if err := s.WriteCSV(&csvBuf); err != nil {
		return "", "", fmt.Errorf("rendering CSV summary: %w", err)
	}
	s.WriteNarrative(&txtBuf)

	csvPath = filepath.Join(dir, name+".csv")
	txtPath = filepath.Join(dir, name+".txt")
	if err := os.WriteFile(csvPath, csvBuf.Bytes(), 0o644); err != nil {
		return "", "", fmt.Errorf("writing CSV summary: %w", err)
	}
	if err := os.WriteFile(txtPath, txtBuf.Bytes(), 0o644); err != nil {
		return "", "", fmt.Errorf("writing summary report: %w", err)
	}
	return csvPath, txtPath, nil
}
