// Package explore scores candidate hardware implementations of a layer. It
// drives synthesis of each candidate, extracts latency and cost from the
// generated reports, extrapolates the reduced-iteration latency to the full
// problem size, and tabulates the batch for comparison.
package explore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scale-cnn/explorer/hlsreport"
	"github.com/scale-cnn/explorer/layer"
)

// Result is the analysis of one synthesized implementation. It is created
// once per variant and never mutated afterwards.
type Result struct {
	// RawLatency is the worst-case cycle count reported by the tool for the
	// reduced-iteration run.
	RawLatency int
	// TrueLatency is RawLatency extrapolated to the full problem size.
	TrueLatency int
	Cost        hlsreport.CostBreakdown
	// Stages holds the dataflow pipeline stage latencies, in pipeline order.
	Stages []hlsreport.StageLatency
}

const (
	reportDirName      = "report"
	dataflowReportName = "dataflow_in_loop_TOP_LOOP_csynth.rpt"
)

// Analyze parses the synthesis reports of one implementation and produces
// its Result. The implementation must already be synthesized; a missing
// report file aborts the whole batch via MissingArtifactError.
func Analyze(spec layer.Spec, v layer.Variant) (Result, error) {
	if err := archiveReports(spec.LayerName, v.Dir); err != nil {
		return Result{}, err
	}

	reportDir := filepath.Join(v.Dir, reportDirName)
	dataflowPath := filepath.Join(reportDir, dataflowReportName)
	topPath := filepath.Join(reportDir, spec.LayerName+"_top_csynth.xml")
	for _, p := range []string{dataflowPath, topPath} {
		if _, err := os.Stat(p); err != nil {
			return Result{}, &MissingArtifactError{Path: p}
		}
	}

	stages, dataflowII, err := hlsreport.ReadDataflow(dataflowPath)
	if err != nil {
		return Result{}, err
	}
	rawLatency, cost, err := hlsreport.ReadTopLevel(topPath)
	if err != nil {
		return Result{}, err
	}

	slog.Info("analyzed implementation reports",
		"dir", v.Dir, "latency", rawLatency, "dataflow_ii", dataflowII)

	return Result{
		RawLatency:  rawLatency,
		TrueLatency: TrueLatency(spec, v, rawLatency, dataflowII),
		Cost:        cost,
		Stages:      stages,
	}, nil
}

// archiveReports copies the report directory out of the HLS project tree and
// deletes the rest of the project. The tool generates several MB of
// intermediate data per implementation; only the reports are kept. Re-running
// after a previous archive is a no-op.
func archiveReports(layerName, implDir string) error {
	projDir := filepath.Join(implDir, layerName+"_prj")
	if _, err := os.Stat(projDir); os.IsNotExist(err) {
		return nil
	}

	src := filepath.Join(projDir, "solution1", "syn", reportDirName)
	if _, err := os.Stat(src); err != nil {
		return &MissingArtifactError{Path: src}
	}
	if err := copyTree(src, filepath.Join(implDir, reportDirName)); err != nil {
		return fmt.Errorf("archiving reports at %s: %w", implDir, err)
	}
	return os.RemoveAll(projDir)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}
