// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

// tables.go defines the report tables and the functions that retrieve their
// field values from the matrix set.

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"semustat/internal/profile"
)

const (
	BootTimeTableName               = "Boot Time"
	TimesCalledTableName            = "Times Called"
	OffsetTableName                 = "Timer Offset"
	RealBootTimeTableName           = "Real Boot Time"
	TimesCalledClocksourceTableName = "Times Called Clocksource"
	PredictedNsPerCallTableName     = "Predicted ns per Call"
	PredictedBootTimeTableName      = "Predicted Boot Time"
	ScaleFactorTableName            = "Scale Factor"
	TotalClocksourceNsTableName     = "Total Clocksource ns"
	SummaryPercentageTableName      = "Summary Percentage"
	AvgRealNsPerCallTableName       = "Average Real ns per Call"
	AvgRealPercentageTableName      = "Average Real Percentage"
	DiffNsPerCallTableName          = "Diff ns per Call"
	DiffBootTimeTableName           = "Diff Boot Time"
	EventStatisticsTableName        = "Event Statistics"
	SampleCountsTableName           = "Sample Counts"
)

const noDataFound = "No data found."

// tableDefinitions maps table names to their definitions. One trend table
// per metric matrix, plus the per-cell event statistics and sample count
// tables.
var tableDefinitions = map[string]TableDefinition{
	BootTimeTableName:               trendTable(BootTimeTableName, "boot_time", false),
	TimesCalledTableName:            trendTable(TimesCalledTableName, "times_called", true),
	OffsetTableName:                 trendTable(OffsetTableName, "offset", true),
	RealBootTimeTableName:           trendTable(RealBootTimeTableName, "real_boot_time", false),
	TimesCalledClocksourceTableName: trendTable(TimesCalledClocksourceTableName, "times_called_clocksource", true),
	PredictedNsPerCallTableName:     trendTable(PredictedNsPerCallTableName, "predicted_ns_per_call", false),
	PredictedBootTimeTableName:      trendTable(PredictedBootTimeTableName, "predicted_boot_time", false),
	ScaleFactorTableName:            trendTable(ScaleFactorTableName, "scale_factor", false),
	TotalClocksourceNsTableName:     trendTable(TotalClocksourceNsTableName, "total_clocksource_ns", true),
	SummaryPercentageTableName:      trendTable(SummaryPercentageTableName, "summary_percentage", false),
	AvgRealNsPerCallTableName:       trendTable(AvgRealNsPerCallTableName, "avg_real_ns_per_call", false),
	AvgRealPercentageTableName:      trendTable(AvgRealPercentageTableName, "avg_real_percentage", false),
	DiffNsPerCallTableName:          trendTable(DiffNsPerCallTableName, "diff_ns_per_call", false),
	DiffBootTimeTableName:           trendTable(DiffBootTimeTableName, "diff_boot_time", false),
	EventStatisticsTableName: {
		Name:        EventStatisticsTableName,
		HasRows:     true,
		NoDataFound: "No event samples found.",
		FieldsFunc:  eventStatisticsFields,
	},
	SampleCountsTableName: {
		Name:       SampleCountsTableName,
		HasRows:    true,
		FieldsFunc: sampleCountsFields,
	},
}

// tableNamesInOrder fixes the report order of the tables.
var tableNamesInOrder = []string{
	BootTimeTableName,
	TimesCalledTableName,
	OffsetTableName,
	RealBootTimeTableName,
	TimesCalledClocksourceTableName,
	PredictedNsPerCallTableName,
	PredictedBootTimeTableName,
	ScaleFactorTableName,
	TotalClocksourceNsTableName,
	SummaryPercentageTableName,
	AvgRealNsPerCallTableName,
	AvgRealPercentageTableName,
	DiffNsPerCallTableName,
	DiffBootTimeTableName,
	EventStatisticsTableName,
	SampleCountsTableName,
}

// GetTableByName returns the table definition with the given name.
func GetTableByName(name string) (TableDefinition, error) {
	table, ok := tableDefinitions[name]
	if !ok {
		return TableDefinition{}, fmt.Errorf("unknown table: %s", name)
	}
	return table, nil
}

// AllTableNames returns every table name in report order.
func AllTableNames() []string {
	return append([]string{}, tableNamesInOrder...)
}

// TablesByName resolves table names to their definitions, preserving the
// report order regardless of the order of the given names.
func TablesByName(names []string) (tables []TableDefinition, err error) {
	requested := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := tableDefinitions[name]; !ok {
			return nil, fmt.Errorf("unknown table: %s", name)
		}
		requested[name] = true
	}
	for _, name := range tableNamesInOrder {
		if requested[name] {
			tables = append(tables, tableDefinitions[name])
		}
	}
	return
}

// trendTable builds a definition whose fields are the SMP axis followed by
// one column per environment, read straight out of the named matrix.
func trendTable(tableName string, metricName string, grouped bool) TableDefinition {
	return TableDefinition{
		Name:        tableName,
		MetricName:  metricName,
		HasRows:     true,
		NoDataFound: noDataFound,
		FieldsFunc: func(set *profile.MatrixSet, envLabels []string) []Field {
			matrix, err := set.Matrix(metricName)
			if err != nil {
				return []Field{}
			}
			fields := make([]Field, 0, set.Environments+1)
			smpValues := make([]string, set.SMPCount)
			for smp := range set.SMPCount {
				smpValues[smp] = strconv.Itoa(smp + 1)
			}
			fields = append(fields, Field{Name: "SMP", Values: smpValues})
			for env := 1; env <= set.Environments; env++ {
				values := make([]string, set.SMPCount)
				for smp := 1; smp <= set.SMPCount; smp++ {
					values[smp-1] = formatValue(matrix.Get(env, smp), grouped)
				}
				fields = append(fields, Field{Name: envLabel(envLabels, env), Values: values})
			}
			return fields
		},
	}
}

func eventStatisticsFields(set *profile.MatrixSet, envLabels []string) []Field {
	fields := []Field{
		{Name: "Environment"},
		{Name: "SMP"},
		{Name: "Samples"},
		{Name: "Mean ns/Call"},
		{Name: "Min ns/Call"},
		{Name: "Max ns/Call"},
		{Name: "Stddev ns/Call"},
		{Name: "Mean Percentage"},
	}
	meanMatrix, err := set.Matrix("avg_real_ns_per_call")
	if err != nil {
		return []Field{}
	}
	minMatrix, _ := set.Matrix(profile.MetricNsPerCallMin)
	maxMatrix, _ := set.Matrix(profile.MetricNsPerCallMax)
	stddevMatrix, _ := set.Matrix(profile.MetricNsPerCallStddev)
	pctMatrix, _ := set.Matrix("avg_real_percentage")
	for env := 1; env <= set.Environments; env++ {
		for smp := 1; smp <= set.SMPCount; smp++ {
			count := meanMatrix.Count(env, smp)
			if count == 0 {
				continue // cells without samples are reported in the sample counts table
			}
			row := []string{
				envLabel(envLabels, env),
				strconv.Itoa(smp),
				strconv.Itoa(count),
				formatValue(meanMatrix.Get(env, smp), false),
				formatValue(minMatrix.Get(env, smp), false),
				formatValue(maxMatrix.Get(env, smp), false),
				formatValue(stddevMatrix.Get(env, smp), false),
				formatValue(pctMatrix.Get(env, smp), false),
			}
			for i := range fields {
				fields[i].Values = append(fields[i].Values, row[i])
			}
		}
	}
	return fields
}

func sampleCountsFields(set *profile.MatrixSet, envLabels []string) []Field {
	fields := []Field{
		{Name: "Environment"},
		{Name: "SMP"},
		{Name: "Event Samples"},
		{Name: "Percentage Samples"},
		{Name: "Summary Row"},
		{Name: "Emulator Log"},
	}
	nsMatrix, err := set.Matrix("avg_real_ns_per_call")
	if err != nil {
		return []Field{}
	}
	pctMatrix, _ := set.Matrix("avg_real_percentage")
	summaryMatrix, _ := set.Matrix("real_boot_time")
	bootMatrix, _ := set.Matrix("boot_time")
	for env := 1; env <= set.Environments; env++ {
		for smp := 1; smp <= set.SMPCount; smp++ {
			row := []string{
				envLabel(envLabels, env),
				strconv.Itoa(smp),
				strconv.Itoa(nsMatrix.Count(env, smp)),
				strconv.Itoa(pctMatrix.Count(env, smp)),
				presence(summaryMatrix.Count(env, smp)),
				presence(bootMatrix.Count(env, smp)),
			}
			for i := range fields {
				fields[i].Values = append(fields[i].Values, row[i])
			}
		}
	}
	return fields
}

func presence(count int) string {
	if count > 0 {
		return "yes"
	}
	return "no"
}

func envLabel(envLabels []string, env int) string {
	if env-1 < len(envLabels) && envLabels[env-1] != "" {
		return envLabels[env-1]
	}
	return fmt.Sprintf("Env %d", env)
}

var groupedPrinter = message.NewPrinter(language.English)

// formatValue renders one matrix cell. Integral values in grouped columns,
// e.g., call counts, get grouped digits for readability.
func formatValue(value float64, grouped bool) string {
	if grouped && value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return groupedPrinter.Sprintf("%d", int64(value))
	}
	return strconv.FormatFloat(value, 'g', 8, 64)
}
