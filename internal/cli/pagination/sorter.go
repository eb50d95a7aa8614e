package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/boxect/internal/engine"
	"github.com/rshade/boxect/internal/engine/batch"
)

// outcomeKeys maps each sort field to the value it compares.
//
//nolint:gochecknoglobals // Read-only lookup table.
var outcomeKeys = map[string]func(batch.Outcome) float64{
	"ect":       func(o batch.Outcome) float64 { return o.Result.ECT },
	"max_cs":    func(o batch.Outcome) float64 { return o.Result.MaxCS },
	"cs_s":      func(o batch.Outcome) float64 { return o.Result.CSStorage },
	"cs_d":      func(o batch.Outcome) float64 { return o.Result.CSTransit },
	"srf_s":     func(o batch.Outcome) float64 { return o.Result.SRFStorage },
	"srf_d":     func(o batch.Outcome) float64 { return o.Result.SRFTransit },
	"weight":    func(o batch.Outcome) float64 { return o.Inputs.Weight },
	"perimeter": func(o batch.Outcome) float64 { return o.Result.InsidePerimeter },
}

// OutcomeSorter sorts batch outcomes by a named field.
type OutcomeSorter struct{}

// NewOutcomeSorter creates an OutcomeSorter.
func NewOutcomeSorter() *OutcomeSorter {
	return &OutcomeSorter{}
}

// IsValidField checks if the field is valid for sorting.
func (s *OutcomeSorter) IsValidField(field string) bool {
	switch field {
	case "name", "governing":
		return true
	}
	_, ok := outcomeKeys[field]
	return ok
}

// GetValidFields returns all valid sort fields.
func (s *OutcomeSorter) GetValidFields() []string {
	fields := []string{"name", "governing"}
	for field := range outcomeKeys {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validate returns an error naming the valid fields when field is unknown.
// The empty field (input order) is valid.
func (s *OutcomeSorter) Validate(field string) error {
	if field == "" || s.IsValidField(field) {
		return nil
	}
	return fmt.Errorf("%w %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
}

// Sort returns a sorted copy of outcomes. Failed outcomes always sort last,
// in input order. An empty or unknown field returns the outcomes unchanged.
func (s *OutcomeSorter) Sort(outcomes []batch.Outcome, field, order string) []batch.Outcome {
	if !s.IsValidField(field) {
		return outcomes
	}

	sorted := make([]batch.Outcome, len(outcomes))
	copy(sorted, outcomes)

	less := s.lessFunc(field)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.OK() != b.OK() {
			return a.OK()
		}
		if !a.OK() {
			return false
		}
		if order == SortOrderDesc {
			return less(b, a)
		}
		return less(a, b)
	})
	return sorted
}

func (s *OutcomeSorter) lessFunc(field string) func(a, b batch.Outcome) bool {
	switch field {
	case "name":
		return func(a, b batch.Outcome) bool { return a.Name < b.Name }
	case "governing":
		return func(a, b batch.Outcome) bool {
			return a.Result.Governing == engine.CaseStorage && b.Result.Governing != engine.CaseStorage
		}
	default:
		key := outcomeKeys[field]
		return func(a, b batch.Outcome) bool { return key(a) < key(b) }
	}
}
