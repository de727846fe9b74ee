// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureMetrics(t *testing.T) {
	require.NoError(t, configureMetrics())
	for _, def := range metricDefinitions {
		assert.NotNil(t, def.evaluable, def.Name)
	}
}

func TestMetricNames(t *testing.T) {
	names := MetricNames()
	assert.Len(t, names, len(metricDefinitions))
	assert.Equal(t, "boot_time", names[0])
	assert.Contains(t, names, "avg_real_ns_per_call")
	assert.Contains(t, names, "diff_boot_time")
}

func TestMetricDescription(t *testing.T) {
	assert.Equal(t, "predicted boot time (sec)", MetricDescription("predicted_boot_time"))
	// unknown names fall back to the name itself
	assert.Equal(t, "no_such_metric", MetricDescription("no_such_metric"))
}

func TestEvaluateMetric(t *testing.T) {
	require.NoError(t, configureMetrics())
	variables := map[string]any{
		"real_boot_time":        3.5,
		"times_called":          1000.0,
		"predicted_ns_per_call": 50.0,
		"predict_sec":           3.6,
		"scale_factor":          1.5,
		"total_clocksource_ns":  50000.0,
		"summary_percentage":    0.2,
		"boot_seconds":          3.4,
		"call_count":            999.0,
		"offset_ns":             -42.0,
		"avg_real_ns_per_call":  0.00003,
		"avg_real_percentage":   0.6,
	}
	byName := make(map[string]MetricDefinition, len(metricDefinitions))
	for _, def := range metricDefinitions {
		byName[def.Name] = def
	}
	assert.InDelta(t, 3.4, evaluateMetric(byName["boot_time"], variables), 1e-12)
	assert.InDelta(t, -42.0, evaluateMetric(byName["offset"], variables), 1e-12)
	assert.InDelta(t, 0.00003-50.0, evaluateMetric(byName["diff_ns_per_call"], variables), 1e-9)
	assert.InDelta(t, 3.6-3.5, evaluateMetric(byName["diff_boot_time"], variables), 1e-12)

	// a missing variable degrades to the default value
	assert.Zero(t, evaluateMetric(byName["diff_boot_time"], map[string]any{}))
}
