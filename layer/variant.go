package layer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Variant identifies one candidate implementation of a layer: where its
// synthesis artifacts live and how far the synthesis run was scaled down
// relative to the true problem size.
type Variant struct {
	Name string `json:"name"`
	Dir  string `json:"dir"`

	// OchanScaleFactor divides the output-channel iteration counts of the
	// reduced synthesis run. The latency extrapolation divides by it.
	OchanScaleFactor int `json:"ochan_scale_factor"`

	// ReadScaleFactor scales the memory read width. Only the disabled
	// bandwidth metric consumes it.
	ReadScaleFactor int `json:"read_scale_factor"`
}

// ParseError reports a file that could not be interpreted against its
// expected schema. Line is zero when the whole file is at fault.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// LoadVariants reads the implementation list for a layer: one JSON object
// per line, in exploration order. A malformed line fails the whole read so
// a batch never silently drops a candidate.
func LoadVariants(path string) ([]Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading implementation list: %w", err)
	}
	defer f.Close()

	var variants []Variant
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(text))
		dec.DisallowUnknownFields()
		var v Variant
		if err := dec.Decode(&v); err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: err.Error()}
		}
		if err := v.validate(); err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: err.Error()}
		}
		variants = append(variants, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading implementation list: %w", err)
	}
	return variants, nil
}

func (v Variant) validate() error {
	if v.Name == "" {
		return errors.New("missing name")
	}
	if v.Dir == "" {
		return errors.New("missing dir")
	}
	if v.OchanScaleFactor == 0 {
		return errors.New("ochan_scale_factor must be nonzero")
	}
	return nil
}
