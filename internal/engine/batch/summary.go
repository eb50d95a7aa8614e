package batch

import "github.com/rshade/boxect/internal/engine"

// Summary aggregates a batch of outcomes.
type Summary struct {
	Total  int `json:"total"  yaml:"total"`
	OK     int `json:"ok"     yaml:"ok"`
	Failed int `json:"failed" yaml:"failed"`

	StorageGoverned int `json:"storage_governed" yaml:"storage_governed"`
	TransitGoverned int `json:"transit_governed" yaml:"transit_governed"`

	// MaxECT is the largest recommendation and MaxECTScenario the first
	// scenario that produced it. Both are zero when nothing was computed.
	MaxECT         float64 `json:"max_ect"          yaml:"max_ect"`
	MaxECTScenario string  `json:"max_ect_scenario" yaml:"max_ect_scenario"`
}

// Summarize counts outcomes and finds the most demanding scenario.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if !o.OK() {
			s.Failed++
			continue
		}
		s.OK++
		switch o.Result.Governing {
		case engine.CaseStorage:
			s.StorageGoverned++
		case engine.CaseTransit:
			s.TransitGoverned++
		}
		if s.MaxECTScenario == "" || o.Result.ECT > s.MaxECT {
			s.MaxECT = o.Result.ECT
			s.MaxECTScenario = o.Name
		}
	}
	return s
}
