// Package layer describes the convolutional layer under exploration and the
// candidate hardware implementations of it.
package layer

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec describes one convolutional layer of the network. It is provided by
// the caller of the explorer and never mutated during exploration.
type Spec struct {
	// LayerName identifies the layer and names its synthesis artifacts.
	LayerName    string `yaml:"layer_name"`
	OutputHeight int    `yaml:"output_height"`
	OutputWidth  int    `yaml:"output_width"`
	OutputChans  int    `yaml:"output_chans"`

	// FilterSize and InputChans are not used by the latency model. Layer
	// files carry them, and the memory-bandwidth metric needs them if it is
	// ever re-enabled.
	FilterSize int `yaml:"filter_size"`
	InputChans int `yaml:"input_chans"`
}

// Validate checks the fields the latency model divides or multiplies by.
func (s Spec) Validate() error {
	if s.LayerName == "" {
		return errors.New("layer spec: missing layer_name")
	}
	if s.OutputHeight <= 0 || s.OutputWidth <= 0 || s.OutputChans <= 0 {
		return fmt.Errorf("layer spec %s: output dimensions must be positive, got %dx%dx%d",
			s.LayerName, s.OutputHeight, s.OutputWidth, s.OutputChans)
	}
	return nil
}

// LoadSpec reads a layer spec from a YAML file and validates it.
func LoadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading layer spec: %w", err)
	}

	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, &ParseError{Path: path, Reason: err.Error()}
	}
	if err := s.Validate(); err != nil {
		return Spec{}, &ParseError{Path: path, Reason: err.Error()}
	}
	return s, nil
}
