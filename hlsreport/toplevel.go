package hlsreport

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// csynthProfile mirrors the parts of <layer>_top_csynth.xml this package
// consumes. The category elements under Resources and AvailableResources are
// named after the resource (BRAM_18K, DSP, FF, LUT, ...), so they are
// collected generically instead of being enumerated here.
type csynthProfile struct {
	XMLName              xml.Name `xml:"profile"`
	PerformanceEstimates struct {
		SummaryOfOverallLatency struct {
			WorstCaseLatency string `xml:"Worst-caseLatency"`
		} `xml:"SummaryOfOverallLatency"`
	} `xml:"PerformanceEstimates"`
	AreaEstimates struct {
		Resources          resourceCounts `xml:"Resources"`
		AvailableResources resourceCounts `xml:"AvailableResources"`
	} `xml:"AreaEstimates"`
}

// resourceCounts collects the child elements of a resource section as
// (category, count) pairs, preserving document order.
type resourceCounts struct {
	counts map[string]int
	order  []string
}

func (r *resourceCounts) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	r.counts = make(map[string]int)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var raw string
			if err := d.DecodeElement(&raw, &t); err != nil {
				return err
			}
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("resource %s: not an integer count: %q", t.Name.Local, raw)
			}
			if _, seen := r.counts[t.Name.Local]; !seen {
				r.order = append(r.order, t.Name.Local)
			}
			r.counts[t.Name.Local] = n
		case xml.EndElement:
			return nil
		}
	}
}

// ReadTopLevel parses the top-level csynth XML report of a layer. It returns
// the worst-case latency in cycles and the resource cost breakdown. Values
// are as reported: the latency is an integer cycle count and each cost
// fraction is used/available capacity, unrounded.
func ReadTopLevel(path string) (int, CostBreakdown, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, CostBreakdown{}, fmt.Errorf("reading top-level report: %w", err)
	}

	var profile csynthProfile
	if err := xml.Unmarshal(data, &profile); err != nil {
		return 0, CostBreakdown{}, &ParseError{Path: path, Reason: err.Error()}
	}

	rawLatency := strings.TrimSpace(profile.PerformanceEstimates.SummaryOfOverallLatency.WorstCaseLatency)
	if rawLatency == "" {
		return 0, CostBreakdown{}, &ParseError{Path: path, Reason: "missing Worst-caseLatency"}
	}
	latency, err := strconv.Atoi(rawLatency)
	if err != nil {
		return 0, CostBreakdown{}, &ParseError{Path: path, Reason: fmt.Sprintf("Worst-caseLatency is not an integer: %q", rawLatency)}
	}

	cost, err := costFromArea(path, profile.AreaEstimates.Resources, profile.AreaEstimates.AvailableResources)
	if err != nil {
		return 0, CostBreakdown{}, err
	}
	return latency, cost, nil
}

// costFromArea turns used/available counts into fractional utilizations. The
// aggregate Total is the largest category fraction: the resource that binds
// first when replicating the implementation across the device.
func costFromArea(path string, used, available resourceCounts) (CostBreakdown, error) {
	if len(used.order) == 0 {
		return CostBreakdown{}, &ParseError{Path: path, Reason: "missing AreaEstimates resource counts"}
	}

	cost := CostBreakdown{Categories: make(map[string]float64, len(used.order))}
	for _, category := range used.order {
		avail, ok := available.counts[category]
		if !ok {
			return CostBreakdown{}, &ParseError{Path: path, Reason: fmt.Sprintf("resource %s has no available capacity entry", category)}
		}
		if avail <= 0 {
			return CostBreakdown{}, &ParseError{Path: path, Reason: fmt.Sprintf("resource %s reports nonpositive capacity %d", category, avail)}
		}
		frac := float64(used.counts[category]) / float64(avail)
		cost.Categories[category] = frac
		if frac > cost.Total {
			cost.Total = frac
		}
	}
	return cost, nil
}
