package explore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Synthesizer runs the external HLS tool over one implementation directory.
// Synthesis either runs to completion or fails with a tool-level exit code;
// no timeout is applied.
type Synthesizer interface {
	Synthesize(ctx context.Context, layerName, implDir string) error
}

// VitisHLS synthesizes an implementation by running the vitis_hls batch
// script checked in next to it.
type VitisHLS struct{}

// Synthesize runs `vitis_hls -f <layer>.tcl` inside implDir. The tool's
// console output is discarded; everything of interest ends up in the report
// files. A nonzero exit becomes a ToolError carrying the observed code.
func (VitisHLS) Synthesize(ctx context.Context, layerName, implDir string) error {
	cmd := exec.CommandContext(ctx, "vitis_hls", "-f", layerName+".tcl")
	cmd.Dir = implDir
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ToolError{Dir: implDir, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("running vitis_hls at %s: %w", implDir, err)
	}
	return nil
}
