package explore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"

	"github.com/scale-cnn/explorer/layer"
)

// Explorer synthesizes and scores every candidate implementation of one
// layer, strictly in list order. Any failure aborts the remaining batch: a
// summary missing a variant reads as "this variant matched its neighbor",
// which is worse than no summary at all.
type Explorer struct {
	Synth Synthesizer

	// Progress enables a console progress bar across variants.
	Progress bool

	// Out receives the narrative report and the comparison table.
	// Defaults to os.Stdout.
	Out io.Writer
}

func (e *Explorer) out() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

// Run explores every implementation listed in listPath. Each variant is
// synthesized and analyzed sequentially; afterwards the batch summary is
// written next to the list file as <layer>_implementations_summary.{csv,txt}
// and echoed to Out.
func (e *Explorer) Run(ctx context.Context, spec layer.Spec, listPath string) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	variants, err := layer.LoadVariants(listPath)
	if err != nil {
		return err
	}
	slog.Info("exploring layer implementations",
		"layer", spec.LayerName, "count", len(variants))

	var bar *pb.ProgressBar
	if e.Progress {
		bar = pb.StartNew(len(variants))
		defer bar.Finish()
	}

	results := make([]VariantResult, 0, len(variants))
	for _, v := range variants {
		if info, err := os.Stat(v.Dir); err != nil || !info.IsDir() {
			return &ConfigError{Dir: v.Dir}
		}

		slog.Info("synthesizing layer implementation", "dir", v.Dir)
		if err := e.Synth.Synthesize(ctx, spec.LayerName, v.Dir); err != nil {
			return err
		}

		result, err := Analyze(spec, v)
		if err != nil {
			return err
		}
		results = append(results, VariantResult{Variant: v, Result: result})
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	summary := &Summary{Layer: spec, Results: results}
	name := spec.LayerName + "_implementations_summary"
	csvPath, txtPath, err := summary.Save(filepath.Dir(listPath), name)
	if err != nil {
		return err
	}

	summary.WriteNarrative(e.out())
	summary.WriteTable(e.out())
	fmt.Fprintf(e.out(), "\nGenerated report at %s\n", txtPath)
	fmt.Fprintf(e.out(), "Generated CSV summary at %s\n", csvPath)
	return nil
}
