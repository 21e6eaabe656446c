package explore

import "github.com/scale-cnn/explorer/layer"

// synthIterationsPerChan is the reduced iteration count the synthesis scripts
// run the top loop with, per output channel. Full iteration counts make
// synthesis intractably slow, so each candidate is synthesized over this
// fixed subset and the analysis extrapolates the rest.
const synthIterationsPerChan = 50

// TrueLatency extrapolates a reduced-iteration synthesis latency to the full
// problem size. The top loop is a dataflow pipeline, so each skipped
// iteration costs one initiation interval on top of the reported latency:
//
//	true = report + (trueIters - synthIters) * II
//
// The result is truncated to an integer cycle count. When the variant was
// synthesized at larger-than-true scale the correction is negative, which is
// valid for down-scaled debug runs.
func TrueLatency(spec layer.Spec, v layer.Variant, reportLatency, dataflowII int) int {
	scale := float64(v.OchanScaleFactor)
	trueIters := float64(spec.OutputHeight*spec.OutputWidth*spec.OutputChans) / scale
	synthIters := float64(synthIterationsPerChan*spec.OutputChans) / scale
	return int(float64(reportLatency) + (trueIters-synthIters)*float64(dataflowII))
}
