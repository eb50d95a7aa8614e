package report

import (
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/rshade/boxect/internal/engine"
)

// Metric names written by WriteMetrics.
const (
	MetricECT              = "boxect_recommended_ect"
	MetricCompressive      = "boxect_compressive_strength_lb"
	MetricReduction        = "boxect_strength_reduction_factor"
	MetricScenariosInvalid = "boxect_scenarios_invalid"
)

// WriteMetrics writes rows as Prometheus text exposition, suitable for a
// node exporter textfile collector. Rejected scenarios are only counted.
func WriteMetrics(w io.Writer, rows []Row) error {
	ect := gaugeFamily(MetricECT, "Recommended minimum edge crush test value in lb/in.")
	cs := gaugeFamily(MetricCompressive, "Required box compression strength per load case in lb.")
	srf := gaugeFamily(MetricReduction, "Combined strength reduction factor per load case.")
	invalid := gaugeFamily(MetricScenariosInvalid, "Scenarios whose inputs were rejected.")

	failed := 0
	for _, r := range rows {
		if r.Err != nil {
			failed++
			continue
		}
		res := r.Result
		ect.Metric = append(ect.Metric, gauge(res.ECT, "scenario", r.Name))
		cs.Metric = append(cs.Metric,
			gauge(res.CSStorage, "case", caseLabel(engine.CaseStorage), "scenario", r.Name),
			gauge(res.CSTransit, "case", caseLabel(engine.CaseTransit), "scenario", r.Name),
		)
		srf.Metric = append(srf.Metric,
			gauge(res.SRFStorage, "case", caseLabel(engine.CaseStorage), "scenario", r.Name),
			gauge(res.SRFTransit, "case", caseLabel(engine.CaseTransit), "scenario", r.Name),
		)
	}
	invalid.Metric = append(invalid.Metric, gauge(float64(failed)))

	for _, mf := range []*dto.MetricFamily{ect, cs, srf, invalid} {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func caseLabel(c engine.Case) string {
	switch c {
	case engine.CaseStorage:
		return "storage"
	case engine.CaseTransit:
		return "transit"
	default:
		return ""
	}
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

// gauge builds a gauge sample; labels are name/value pairs in name order.
func gauge(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	return m
}
