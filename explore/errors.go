package explore

import "fmt"

// ConfigError reports an implementation directory from the variant list that
// does not exist on disk. It is raised before synthesis is attempted.
type ConfigError struct {
	Dir string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid implementation path at %s", e.Dir)
}

// ToolError reports a synthesis tool run that exited nonzero.
type ToolError struct {
	Dir      string
	ExitCode int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("vitis_hls failed with exit code %d at %s", e.ExitCode, e.Dir)
}

// MissingArtifactError reports a report file that should exist after a
// successful synthesis run but does not. It signals a tool or environment
// inconsistency, so the whole batch aborts rather than skipping the variant.
type MissingArtifactError struct {
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("synthesis report missing at %s", e.Path)
}
