// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"log/slog"

	"github.com/aclements/go-moremath/stats"

	"semustat/internal/rawlog"
)

// names of the extended event-statistics matrices; the spread of the
// retained samples backs the averages reported above them
const (
	MetricNsPerCallMin    = "real_ns_per_call_min"
	MetricNsPerCallMax    = "real_ns_per_call_max"
	MetricNsPerCallStddev = "real_ns_per_call_stddev"
)

// BuildMatrices runs one aggregation pass over the campaign described by
// cfg and returns one dense matrix per metric. Cells are visited in
// ascending environment then SMP order. Missing or malformed input degrades
// the affected cell to its default value; it never shrinks a matrix and
// never fails the batch. The only error conditions are an invalid Config
// and a malformed built-in metric expression.
func BuildMatrices(cfg Config) (*MatrixSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := configureMetrics(); err != nil {
		return nil, err
	}
	names := append(MetricNames(), MetricNsPerCallMin, MetricNsPerCallMax, MetricNsPerCallStddev)
	set := NewMatrixSet(cfg.Environments, cfg.SMPCount, names)
	for env := 1; env <= cfg.Environments; env++ {
		summary := LoadSummaryTable(cfg.SummaryPath(env), cfg.Strict)
		for smp := 1; smp <= cfg.SMPCount; smp++ {
			fillCell(cfg, set, summary, env, smp)
		}
	}
	slog.Info("aggregation complete",
		slog.Int("environments", cfg.Environments),
		slog.Int("smp", cfg.SMPCount),
		slog.Int("matrices", len(names)))
	return set, nil
}

// cell holds the intermediate values of one (environment, SMP) grid cell.
type cell struct {
	row        SummaryRow
	haveRow    bool
	boot       rawlog.BootMeasurement
	offset     rawlog.OffsetMeasurement
	haveLog    bool
	nsPerCall  []float64
	percentage []float64
}

func fillCell(cfg Config, set *MatrixSet, summary map[int]SummaryRow, env int, smp int) {
	var c cell
	c.row, c.haveRow = summary[smp]
	if !c.haveRow {
		slog.Warn("no summary row for cell, using default values", slog.Int("env", env), slog.Int("smp", smp))
	}
	if content, found := rawlog.ReadLog(cfg.EmulatorLogPath(env, smp)); found {
		c.haveLog = true
		c.boot = rawlog.ExtractBoot(content)
		c.offset = rawlog.ExtractOffset(content)
	}
	if content, found := rawlog.ReadLog(cfg.TimeLogPath(env, smp)); found {
		events := rawlog.ExtractEvents(content, cfg.OutlierThresholdNs)
		c.nsPerCall = make([]float64, 0, len(events))
		c.percentage = make([]float64, 0, len(events))
		for _, event := range events {
			// two timer calls per measurement probe, hence the /2
			c.nsPerCall = append(c.nsPerCall, event.TotalNs/2/1e6)
			if event.DiffNs != 0 {
				c.percentage = append(c.percentage, event.TotalNs/event.DiffNs)
			}
		}
	}
	set.setSeries(env, smp, EventSeries{NsPerCall: c.nsPerCall, Percentage: c.percentage})

	variables := map[string]any{
		"real_boot_time":        c.row.RealBootTime,
		"times_called":          c.row.TimesCalled,
		"predicted_ns_per_call": c.row.PredictedNsPerCall,
		"predict_sec":           c.row.PredictSec,
		"scale_factor":          c.row.ScaleFactor,
		"total_clocksource_ns":  c.row.TotalClocksourceNs,
		"summary_percentage":    c.row.Percentage,
		"boot_seconds":          c.boot.BootSeconds,
		"call_count":            float64(c.boot.CallCount),
		"offset_ns":             float64(c.offset.OffsetNs),
		"avg_real_ns_per_call":  mean(c.nsPerCall),
		"avg_real_percentage":   mean(c.percentage),
	}
	for _, def := range metricDefinitions {
		set.mustMatrix(def.Name).Set(env, smp, evaluateMetric(def, variables), c.count(def.CountSource))
	}

	nsMin, nsMax := bounds(c.nsPerCall)
	set.mustMatrix(MetricNsPerCallMin).Set(env, smp, nsMin, len(c.nsPerCall))
	set.mustMatrix(MetricNsPerCallMax).Set(env, smp, nsMax, len(c.nsPerCall))
	set.mustMatrix(MetricNsPerCallStddev).Set(env, smp, stddev(c.nsPerCall), len(c.nsPerCall))
}

func (c *cell) count(source string) int {
	switch source {
	case countSourceSummary:
		if c.haveRow {
			return 1
		}
		return 0
	case countSourceEventsNs:
		return len(c.nsPerCall)
	case countSourceEventsPct:
		return len(c.percentage)
	case countSourceBootLog:
		if c.haveLog {
			return 1
		}
		return 0
	}
	return 0
}

// mean returns the arithmetic mean, with the empty set degrading to 0.0
// rather than NaN so that empty cells stay chartable.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0.0
	}
	return stats.Mean(vals)
}

func bounds(vals []float64) (low float64, high float64) {
	if len(vals) == 0 {
		return 0.0, 0.0
	}
	return stats.Bounds(vals)
}

func stddev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0.0
	}
	return stats.Sample{Xs: vals}.StdDev()
}
