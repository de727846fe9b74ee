// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/casbin/govaluate"
)

// count sources name which retained-sample population backs a metric's
// per-cell count
const (
	countSourceSummary   = "summary"    // 1 when the summary row was present
	countSourceEventsNs  = "events_ns"  // retained event records
	countSourceEventsPct = "events_pct" // retained event records with diff != 0
	countSourceBootLog   = "boot_log"   // 1 when the emulator log was found
)

// MetricDefinition defines one output matrix: its name, the expression that
// produces its per-cell value, and the sample population that backs it.
// Expressions are evaluated per cell over the variables assembled from the
// summary row and the extracted log measurements.
type MetricDefinition struct {
	Name        string
	Description string
	Expression  string
	CountSource string
	evaluable   *govaluate.EvaluableExpression // parse expression once, reuse for every cell
}

// metricDefinitions lists every output matrix in presentation order. The
// first three mirror the whole-log views of the emulator console log, the
// middle block passes the summary table columns through, and the rest are
// derived from the per-call time logs.
var metricDefinitions = []MetricDefinition{
	{Name: "boot_time", Description: "boot time from the emulator log (sec)", Expression: "boot_seconds", CountSource: countSourceBootLog},
	{Name: "times_called", Description: "clocksource calls from the emulator log", Expression: "call_count", CountSource: countSourceBootLog},
	{Name: "offset", Description: "timer offset from the emulator log (ns)", Expression: "offset_ns", CountSource: countSourceBootLog},
	{Name: "real_boot_time", Description: "measured boot time (sec)", Expression: "real_boot_time", CountSource: countSourceSummary},
	{Name: "times_called_clocksource", Description: "clocksource calls during boot", Expression: "times_called", CountSource: countSourceSummary},
	{Name: "predicted_ns_per_call", Description: "predicted cost of one clocksource call (ns)", Expression: "predicted_ns_per_call", CountSource: countSourceSummary},
	{Name: "predicted_boot_time", Description: "predicted boot time (sec)", Expression: "predict_sec", CountSource: countSourceSummary},
	{Name: "scale_factor", Description: "timer scale factor", Expression: "scale_factor", CountSource: countSourceSummary},
	{Name: "total_clocksource_ns", Description: "total time spent in the clocksource (ns)", Expression: "total_clocksource_ns", CountSource: countSourceSummary},
	{Name: "summary_percentage", Description: "clocksource share reported by the summary", Expression: "summary_percentage", CountSource: countSourceSummary},
	{Name: "avg_real_ns_per_call", Description: "average measured cost of one clocksource call (ns)", Expression: "avg_real_ns_per_call", CountSource: countSourceEventsNs},
	{Name: "avg_real_percentage", Description: "average measured clocksource share", Expression: "avg_real_percentage", CountSource: countSourceEventsPct},
	{Name: "diff_ns_per_call", Description: "measured minus predicted ns per call", Expression: "avg_real_ns_per_call - predicted_ns_per_call", CountSource: countSourceEventsNs},
	{Name: "diff_boot_time", Description: "predicted minus measured boot time (sec)", Expression: "predict_sec - real_boot_time", CountSource: countSourceSummary},
}

var configureMetricsOnce sync.Once

// configureMetrics parses every metric expression exactly once.
func configureMetrics() (err error) {
	configureMetricsOnce.Do(func() {
		for i := range metricDefinitions {
			var evaluable *govaluate.EvaluableExpression
			evaluable, err = govaluate.NewEvaluableExpression(metricDefinitions[i].Expression)
			if err != nil {
				err = fmt.Errorf("failed to parse metric expression %q: %w", metricDefinitions[i].Expression, err)
				return
			}
			metricDefinitions[i].evaluable = evaluable
		}
	})
	return
}

// MetricNames returns the names of all output matrices in presentation order.
func MetricNames() []string {
	names := make([]string, 0, len(metricDefinitions))
	for _, def := range metricDefinitions {
		names = append(names, def.Name)
	}
	return names
}

// MetricDescription returns the description of the named metric, or the
// name itself when the metric is unknown.
func MetricDescription(name string) string {
	for _, def := range metricDefinitions {
		if def.Name == name {
			return def.Description
		}
	}
	return name
}

// evaluateMetric computes one cell value. Evaluation failures degrade to the
// documented default of 0.0 so the dense-grid invariant holds.
func evaluateMetric(def MetricDefinition, variables map[string]any) float64 {
	result, err := def.evaluable.Evaluate(variables)
	if err != nil {
		slog.Warn("failed to evaluate metric expression", slog.String("metric", def.Name), slog.String("error", err.Error()))
		return 0.0
	}
	value, ok := result.(float64)
	if !ok {
		slog.Warn("metric expression did not produce a number", slog.String("metric", def.Name))
		return 0.0
	}
	return value
}
